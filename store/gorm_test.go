package store

import (
	"testing"

	"lend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KVRecord{}))
	return NewGormStore(db)
}

func TestGormStoreGetMissingKey(t *testing.T) {
	s := newTestGormStore(t)

	_, err := s.Get("9876543210:userOtp")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGormStoreRoundTrip(t *testing.T) {
	s := newTestGormStore(t)

	require.NoError(t, s.Set("9876543210:loanDetails", []byte(`{"amount":50000}`)))

	value, err := s.Get("9876543210:loanDetails")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"amount":50000}`), value)
}

func TestGormStoreSetReplaces(t *testing.T) {
	s := newTestGormStore(t)

	require.NoError(t, s.Set("9876543210:userOtp", []byte(`{"code":"111111"}`)))
	require.NoError(t, s.Set("9876543210:userOtp", []byte(`{"code":"222222"}`)))

	value, err := s.Get("9876543210:userOtp")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"code":"222222"}`), value)

	var count int64
	require.NoError(t, s.db.Model(&models.KVRecord{}).Where("key = ?", "9876543210:userOtp").Count(&count).Error)
	assert.Equal(t, int64(1), count, "upsert must replace, not append")
}

func TestGormStoreDelete(t *testing.T) {
	s := newTestGormStore(t)

	require.NoError(t, s.Set("9876543210:userOtp", []byte(`{"code":"111111"}`)))
	require.NoError(t, s.Delete("9876543210:userOtp"))

	_, err := s.Get("9876543210:userOtp")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGormStoreKeyRevivesAfterDelete(t *testing.T) {
	s := newTestGormStore(t)

	// the login OTP key goes through this exact cycle on every re-login
	require.NoError(t, s.Set("9876543210:userOtp", []byte(`{"code":"111111"}`)))
	require.NoError(t, s.Delete("9876543210:userOtp"))
	require.NoError(t, s.Set("9876543210:userOtp", []byte(`{"code":"222222"}`)))

	value, err := s.Get("9876543210:userOtp")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"code":"222222"}`), value)
}

func TestGormStoreKeysIndependent(t *testing.T) {
	s := newTestGormStore(t)

	require.NoError(t, s.Set("9876543210:userOtp", []byte(`{"code":"111111"}`)))
	require.NoError(t, s.Set("9123456780:userOtp", []byte(`{"code":"222222"}`)))
	require.NoError(t, s.Delete("9876543210:userOtp"))

	value, err := s.Get("9123456780:userOtp")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"code":"222222"}`), value)
}
