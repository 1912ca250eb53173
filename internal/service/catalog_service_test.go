package service

import (
	"testing"

	"github.com/estampaviva/estampa-api/internal/models"
)

func TestValidateProduct(t *testing.T) {
	colors := &models.Customizable{Colors: []models.ColorOption{{Name: "Negro", Hex: "#000000"}}}

	tests := []struct {
		name         string
		price        int
		currency     models.Currency
		sizes        []string
		customizable *models.Customizable
		wantErr      bool
	}{
		{"valid plain", 5000, models.CurrencyARS, []string{"S", "M"}, nil, false},
		{"valid customizable", 5000, models.CurrencyARS, []string{"Único"}, colors, false},
		{"negative price", -1, models.CurrencyARS, []string{"M"}, nil, true},
		{"invalid currency", 5000, models.Currency("BTC"), []string{"M"}, nil, true},
		{"no sizes", 5000, models.CurrencyARS, nil, nil, true},
		{"invalid size", 5000, models.CurrencyARS, []string{"XXS-custom"}, nil, true},
		{"customizable without colors", 5000, models.CurrencyARS, []string{"M"}, &models.Customizable{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProduct(tt.price, tt.currency, tt.sizes, tt.customizable)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateProduct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
