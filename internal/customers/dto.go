package customers

import (
	"time"

	"github.com/marioskal/eshop-backend/pkg/db/models"
)

// CustomerDTO is the transport projection of a customer profile.
type CustomerDTO struct {
	UUID        string          `json:"uuid"`
	Firstname   string          `json:"firstname"`
	Lastname    string          `json:"lastname"`
	Username    string          `json:"username,omitempty"`
	Info        *InfoDTO        `json:"info,omitempty"`
	PaymentInfo *PaymentInfoDTO `json:"payment_info,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// InfoDTO is the transport projection of a shipping address.
type InfoDTO struct {
	UUID         string `json:"uuid"`
	PhoneNumber  string `json:"phone_number"`
	Country      string `json:"country"`
	Region       string `json:"region,omitempty"`
	City         string `json:"city"`
	Street       string `json:"street"`
	StreetNumber string `json:"street_number"`
	ZipCode      string `json:"zip_code"`
}

// PaymentInfoDTO is the transport projection of stored card details.
type PaymentInfoDTO struct {
	UUID           string `json:"uuid"`
	Card           string `json:"card"`
	CardName       string `json:"card_name"`
	ExpiredDate    string `json:"expired_date"`
	CardValidation string `json:"card_validation"`
}

func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}

	dto := &CustomerDTO{
		UUID:      c.UUID,
		Firstname: c.Firstname,
		Lastname:  c.Lastname,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.User != nil {
		dto.Username = c.User.Username
	}
	dto.Info = InfoFromModel(c.Info)
	dto.PaymentInfo = PaymentInfoFromModel(c.PaymentInfo)
	return dto
}

func InfoFromModel(info *models.CustomerInfo) *InfoDTO {
	if info == nil {
		return nil
	}

	dto := &InfoDTO{
		UUID:         info.UUID,
		PhoneNumber:  info.PhoneNumber,
		Country:      info.Country,
		City:         info.City,
		Street:       info.Street,
		StreetNumber: info.StreetNumber,
		ZipCode:      info.ZipCode,
	}
	if info.Region != nil {
		dto.Region = info.Region.Name
	}
	return dto
}

func PaymentInfoFromModel(payment *models.PaymentInfo) *PaymentInfoDTO {
	if payment == nil {
		return nil
	}

	return &PaymentInfoDTO{
		UUID:           payment.UUID,
		Card:           payment.Card,
		CardName:       payment.CardName,
		ExpiredDate:    payment.ExpiredDate,
		CardValidation: payment.CardValidation,
	}
}
