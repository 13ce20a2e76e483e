package services

import (
	"testing"

	"burger-shop/config"
	"burger-shop/models"

	"github.com/stretchr/testify/assert"
)

func TestNewNotifier_DisabledWithoutSMTP(t *testing.T) {
	assert.IsType(t, noopNotifier{}, NewNotifier(&config.Config{}))
	assert.IsType(t, &EmailNotifier{}, NewNotifier(&config.Config{SMTPHost: "smtp.local", SMTPPort: 587, SMTPUser: "u", SMTPPass: "p"}))
}

func TestOrderConfirmationBody(t *testing.T) {
	order := models.Order{
		ID:         "ORD-1",
		TotalPrice: 1250000,
		Items: []models.OrderLine{
			{ProductName: "Burger <b>", Quantity: 2, UnitPrice: 625000, Options: []string{"cheddar"}},
		},
	}
	body := orderConfirmationBody(models.User{Username: "nadia"}, order)

	assert.Contains(t, body, "ORD-1")
	assert.Contains(t, body, "1.250.000")
	assert.Contains(t, body, "Burger &lt;b&gt; (cheddar)")
	assert.Contains(t, body, "Hi nadia")
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "500", formatRupiah(500))
	assert.Equal(t, "5.500", formatRupiah(5500))
	assert.Equal(t, "26.000", formatRupiah(26000))
	assert.Equal(t, "1.000.000", formatRupiah(1000000))
}
