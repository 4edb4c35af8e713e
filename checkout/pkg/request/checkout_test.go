package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentValidate(t *testing.T) {
	tests := []struct {
		name    string
		payment Payment
		wantErr bool
	}{
		{
			name: "card with spaced 16 digit number is valid",
			payment: Payment{
				Method:     PaymentMethodCard,
				CardNumber: "4111 1111 1111 1111",
				CardExpiry: "12/27",
				CardCvc:    "123",
			},
		},
		{
			name: "card with short number is rejected",
			payment: Payment{
				Method:     PaymentMethodCard,
				CardNumber: "4111 1111",
				CardExpiry: "12/27",
				CardCvc:    "123",
			},
			wantErr: true,
		},
		{
			name: "card with letters in number is rejected",
			payment: Payment{
				Method:     PaymentMethodCard,
				CardNumber: "4111 1111 1111 111a",
				CardExpiry: "12/27",
				CardCvc:    "123",
			},
			wantErr: true,
		},
		{
			name: "card with bad expiry month is rejected",
			payment: Payment{
				Method:     PaymentMethodCard,
				CardNumber: "4111 1111 1111 1111",
				CardExpiry: "13/27",
				CardCvc:    "123",
			},
			wantErr: true,
		},
		{
			name: "card with short cvc is rejected",
			payment: Payment{
				Method:     PaymentMethodCard,
				CardNumber: "4111 1111 1111 1111",
				CardExpiry: "12/27",
				CardCvc:    "12",
			},
			wantErr: true,
		},
		{
			name: "bank with account name and number is valid",
			payment: Payment{
				Method:        PaymentMethodBank,
				AccountName:   "Ayesha Khan",
				AccountNumber: "PK36SCBL0000001123456702",
			},
		},
		{
			name: "bank without account number is rejected",
			payment: Payment{
				Method:      PaymentMethodBank,
				AccountName: "Ayesha Khan",
			},
			wantErr: true,
		},
		{
			name: "easypaisa with name and phone is valid",
			payment: Payment{
				Method:      PaymentMethodEasypaisa,
				AccountName: "Ayesha Khan",
				PhoneNumber: "+92 300 1234567",
			},
		},
		{
			name: "jazzcash without phone is rejected",
			payment: Payment{
				Method:      PaymentMethodJazzcash,
				AccountName: "Ayesha Khan",
			},
			wantErr: true,
		},
		{
			name:    "unknown method is rejected",
			payment: Payment{Method: "paypal"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
