package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContextToken_Valid(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte(
		`{"session_id":"fb_1723475612_k3d9","utm_source":"instagram","utm_medium":"fb_ads","utm_campaign":"diwali_launch","utm_content":"carousel_v2","placement":"instagram_feed"}`))

	token, err := decodeContextToken(raw)

	assert.NoError(t, err)
	assert.Equal(t, "fb_1723475612_k3d9", token.SessionID)

	snapshot := token.Snapshot()
	assert.Equal(t, "instagram", snapshot.Source)
	assert.Equal(t, "fb_ads", snapshot.Medium)
	assert.Equal(t, "diwali_launch", snapshot.Campaign)
	assert.Equal(t, "carousel_v2", snapshot.Content)
	assert.Equal(t, "instagram_feed", snapshot.Placement)
}

func TestDecodeContextToken_NotBase64(t *testing.T) {
	token, err := decodeContextToken("%%% not base64 %%%")

	assert.Error(t, err)
	assert.Nil(t, token)
	assert.Contains(t, err.Error(), "failed to decode context token")
}

func TestDecodeContextToken_NotJSON(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("just some text"))

	token, err := decodeContextToken(raw)

	assert.Error(t, err)
	assert.Nil(t, token)
	assert.Contains(t, err.Error(), "failed to parse context token")
}

func TestDecodeContextToken_EmptySessionID(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte(`{"utm_source":"facebook"}`))

	token, err := decodeContextToken(raw)

	assert.NoError(t, err)
	assert.Empty(t, token.SessionID)
}
