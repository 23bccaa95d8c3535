package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapExternalStatus(t *testing.T) {
	tests := []struct {
		name        string
		txStatus    string
		fraudStatus string
		want        OrderStatus
		wantErr     bool
	}{
		{name: "settlement", txStatus: "settlement", want: StatusPaid},
		{name: "capture accepted", txStatus: "capture", fraudStatus: "accept", want: StatusPaid},
		{name: "capture challenged", txStatus: "capture", fraudStatus: "challenge", want: StatusPending},
		{name: "pending", txStatus: "pending", want: StatusPending},
		{name: "deny", txStatus: "deny", want: StatusCancelled},
		{name: "expire", txStatus: "expire", want: StatusCancelled},
		{name: "cancel", txStatus: "cancel", want: StatusCancelled},
		{name: "capture with unknown fraud flag", txStatus: "capture", fraudStatus: "review", wantErr: true},
		{name: "capture without fraud flag", txStatus: "capture", wantErr: true},
		{name: "unknown status", txStatus: "refund", wantErr: true},
		{name: "empty status", txStatus: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapExternalStatus(tt.txStatus, tt.fraudStatus)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnmappedExternalStatus)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductValidateSize(t *testing.T) {
	sized := &Product{Size: `["S","M","L"]`}
	assert.NoError(t, sized.ValidateSize("M"))
	assert.ErrorIs(t, sized.ValidateSize(""), ErrSizeRequired)
	assert.ErrorIs(t, sized.ValidateSize("XXL"), ErrInvalidSize)

	unsized := &Product{}
	assert.NoError(t, unsized.ValidateSize(""))
	assert.NoError(t, unsized.ValidateSize("M"))
}
