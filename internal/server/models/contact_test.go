package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContact_State(t *testing.T) {
	uid := "2b7c1d9e"

	tests := []struct {
		name    string
		contact Contact
		user    *User
		want    RegistrationState
	}{
		{"no link", Contact{}, nil, StateUnlinked},
		{"link set but user missing", Contact{UserID: &uid}, nil, StateUnlinked},
		{"linked without password", Contact{UserID: &uid}, &User{ID: uid}, StateLinkedNoSecret},
		{"linked with password", Contact{UserID: &uid}, &User{ID: uid, PasswordHash: "$2a$x"}, StateLinkedRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.contact.State(tt.user))
		})
	}
}

func TestContact_IsRegistered(t *testing.T) {
	uid := "2b7c1d9e"
	c := Contact{UserID: &uid}

	assert.False(t, c.IsRegistered(&User{ID: uid}))
	assert.True(t, c.IsRegistered(&User{ID: uid, PasswordHash: "$2a$x"}))
}

func TestValidPrioAndStatus(t *testing.T) {
	assert.True(t, ValidPrio(PrioLow))
	assert.True(t, ValidPrio(PrioMedium))
	assert.True(t, ValidPrio(PrioUrgent))
	assert.False(t, ValidPrio("critical"))

	assert.True(t, ValidStatus(StatusToDos))
	assert.True(t, ValidStatus(StatusAwaitFeedback))
	assert.False(t, ValidStatus("archived"))
}
