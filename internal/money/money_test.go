package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmarques/budgeteer/internal/money"
)

func TestFormat(t *testing.T) {
	type args struct {
		amount float64
		code   string
	}

	type testCase struct {
		name string
		args args
		want string
	}

	tests := []testCase{
		{
			name: "GroupsThousands",
			args: args{amount: 1234.5, code: "USD"},
			want: "$1,234.50",
		},
		{
			name: "Euro",
			args: args{amount: 9.99, code: "EUR"},
			want: "€9.99",
		},
		{
			name: "Yen",
			args: args{amount: 500, code: "JPY"},
			want: "¥500.00",
		},
		{
			name: "UnknownCodeFallsBackToCode",
			args: args{amount: 10, code: "XXX"},
			want: "XXX10.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Format(tt.args.amount, tt.args.code))
		})
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+$25.00", money.FormatSigned(25, "USD", true))
	assert.Equal(t, "-$25.00", money.FormatSigned(25, "USD", false))
}

func TestValid(t *testing.T) {
	for _, code := range money.Currencies() {
		assert.True(t, money.Valid(code), code)
	}

	assert.False(t, money.Valid("BTC"))
	assert.False(t, money.Valid("XXX")) // parseable ISO code but not offered
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "£", money.Symbol("GBP"))
	assert.Equal(t, "ZZZ", money.Symbol("ZZZ"))
}
