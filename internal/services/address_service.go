// internal/services/address_service.go
package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/models"
)

// Placeholder tokens that mark an address as obviously fake.
var addressPlaceholders = []string{"test", "asdf", "xxx", "000", "fake", "none", "n/a", "123 street"}

var (
	whitespaceRe = regexp.MustCompile(`\s`)
	allZerosRe   = regexp.MustCompile(`^0+$`)
	nlZipRe      = regexp.MustCompile(`^\d{4}\s?[A-Za-z]{2}$`)
	usZipRe      = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// IsAddressInvalid reports whether an order's shipping address looks
// undeliverable. Pure heuristic, no I/O. Checks run in a fixed order and
// short-circuit on the first failure.
func IsAddressInvalid(order *models.Order) bool {
	// No address at all
	if len(strings.TrimSpace(order.Address)) < 5 {
		return true
	}

	// No city
	if len(strings.TrimSpace(order.City)) < 2 {
		return true
	}

	// No zip/postal code
	if len(strings.TrimSpace(order.Zip)) < 3 {
		return true
	}

	// Contains obvious placeholder text
	lowerAddr := strings.ToLower(order.Address + order.City + order.Zip)
	for _, p := range addressPlaceholders {
		if strings.Contains(lowerAddr, p) {
			return true
		}
	}

	// Zip code is all zeros
	if allZerosRe.MatchString(whitespaceRe.ReplaceAllString(order.Zip, "")) {
		return true
	}

	// Netherlands-specific: postal code should be 4 digits + 2 letters
	if order.Country == "NL" && !nlZipRe.MatchString(strings.TrimSpace(order.Zip)) {
		return true
	}

	// US-specific: zip should be 5 or 9 digits
	if order.Country == "US" && !usZipRe.MatchString(strings.TrimSpace(order.Zip)) {
		return true
	}

	return false
}

type AddressService struct {
	db           *gorm.DB
	emailService *EmailService
	templates    EmailTemplates
}

func NewAddressService(db *gorm.DB, emailService *EmailService, templates EmailTemplates) *AddressService {
	return &AddressService{
		db:           db,
		emailService: emailService,
		templates:    templates,
	}
}

// CheckAddresses scans unfulfilled orders that have not been flagged yet and
// flags the ones whose address fails the heuristic. The transition is one-way:
// this never un-flags an order, only a human or a sync-driven address
// overwrite resets validity.
func (s *AddressService) CheckAddresses(storeID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("store_id = ? AND status = ? AND address_valid = ?",
		storeID, models.OrderStatusUnfulfilled, true).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var flagged []models.Order
	for i := range orders {
		if !IsAddressInvalid(&orders[i]) {
			continue
		}

		if err := s.db.Model(&orders[i]).Update("address_valid", false).Error; err != nil {
			return nil, fmt.Errorf("failed to flag order %s: %w", orders[i].OrderNumber, err)
		}
		orders[i].AddressValid = false
		flagged = append(flagged, orders[i])
	}

	if len(flagged) > 0 {
		logrus.WithFields(logrus.Fields{
			"store_id": storeID,
			"flagged":  len(flagged),
		}).Info("Flagged orders with invalid addresses")
	}

	return flagged, nil
}

// AutoSendAddressEmails sends one verification email per flagged unfulfilled
// order. Dedup is by an existing sent wrong_address email for the order, so
// re-running a sync never double-sends.
func (s *AddressService) AutoSendAddressEmails(storeID uuid.UUID) (int, error) {
	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrStoreNotFound
		}
		return 0, fmt.Errorf("database error: %w", err)
	}

	var flaggedOrders []models.Order
	err := s.db.Where("store_id = ? AND address_valid = ? AND status = ?",
		storeID, false, models.OrderStatusUnfulfilled).
		Find(&flaggedOrders).Error
	if err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}

	sent := 0
	for i := range flaggedOrders {
		order := &flaggedOrders[i]

		var existing int64
		err := s.db.Model(&models.Email{}).
			Where("order_id = ? AND type = ? AND status = ?",
				order.ID, models.EmailTypeWrongAddress, models.EmailStatusSent).
			Count(&existing).Error
		if err != nil {
			return sent, fmt.Errorf("database error: %w", err)
		}
		if existing > 0 {
			continue
		}

		tmpl := s.templates.WrongAddress(order, &store)
		if _, err := s.emailService.Send(SendEmailInput{
			To:       order.CustomerEmail,
			Customer: order.CustomerName,
			Subject:  tmpl.Subject,
			HTML:     tmpl.HTML,
			Type:     models.EmailTypeWrongAddress,
			OrderID:  order.ID,
			StoreID:  store.ID,
		}); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}

// SendFollowUps re-sends the address verification email for flagged orders
// whose customer has not replied within daysBeforeFollowUp days. An order gets
// at most 3 sent wrong_address emails in total (original plus two reminders);
// after that it stays stuck until resolved manually.
func (s *AddressService) SendFollowUps(storeID uuid.UUID, daysBeforeFollowUp int) (int, error) {
	if daysBeforeFollowUp <= 0 {
		daysBeforeFollowUp = 3
	}
	cutoff := time.Now().AddDate(0, 0, -daysBeforeFollowUp)

	var store models.Store
	if err := s.db.First(&store, "id = ?", storeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, ErrStoreNotFound
		}
		return 0, fmt.Errorf("database error: %w", err)
	}

	var unreplied []models.Email
	err := s.db.Where("store_id = ? AND type = ? AND status = ? AND replied_at IS NULL AND sent_at < ?",
		storeID, models.EmailTypeWrongAddress, models.EmailStatusSent, cutoff).
		Find(&unreplied).Error
	if err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}

	sent := 0
	for i := range unreplied {
		email := &unreplied[i]

		var order models.Order
		if err := s.db.First(&order, "id = ?", email.OrderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return sent, fmt.Errorf("database error: %w", err)
		}
		// Address was fixed in the meantime, nothing to chase.
		if order.AddressValid {
			continue
		}

		var totalSent int64
		err := s.db.Model(&models.Email{}).
			Where("order_id = ? AND type = ? AND status = ?",
				order.ID, models.EmailTypeWrongAddress, models.EmailStatusSent).
			Count(&totalSent).Error
		if err != nil {
			return sent, fmt.Errorf("database error: %w", err)
		}
		if totalSent >= 3 {
			continue
		}

		tmpl := s.templates.WrongAddress(&order, &store)
		if _, err := s.emailService.Send(SendEmailInput{
			To:       email.Recipient,
			Customer: email.Customer,
			Subject:  "Reminder: " + tmpl.Subject,
			HTML:     tmpl.HTML,
			Type:     models.EmailTypeWrongAddress,
			OrderID:  order.ID,
			StoreID:  storeID,
		}); err != nil {
			return sent, err
		}
		sent++
	}

	return sent, nil
}
