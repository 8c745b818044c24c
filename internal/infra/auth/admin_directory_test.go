package auth

import (
	"testing"

	"muziris/config"

	"github.com/stretchr/testify/assert"
)

func TestAdminDirectory_IsAdmin(t *testing.T) {
	cfg := &config.Config{
		Admin: &config.AdminConfig{
			Emails: "Curator@HouseOfMuziris.com, ops@houseofmuziris.com ,",
		},
	}

	dir := NewAdminDirectory(cfg)

	assert.True(t, dir.IsAdmin("curator@houseofmuziris.com"))
	assert.True(t, dir.IsAdmin(" CURATOR@houseofmuziris.com "))
	assert.True(t, dir.IsAdmin("ops@houseofmuziris.com"))
	assert.False(t, dir.IsAdmin("member@example.com"))
	assert.False(t, dir.IsAdmin(""))
}

func TestAdminDirectory_EmptyList(t *testing.T) {
	dir := NewAdminDirectory(&config.Config{})

	assert.False(t, dir.IsAdmin("anyone@example.com"))
}
