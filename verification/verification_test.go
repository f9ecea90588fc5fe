package verification

import (
	"math/rand"
	"strconv"
	"testing"

	"lend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePAN(t *testing.T) {
	normalized, verified := ValidatePAN("ABCDE1234F")
	assert.True(t, verified)
	assert.Equal(t, "ABCDE1234F", normalized)

	// lowercase input is uppercased before matching
	normalized, verified = ValidatePAN("abcde1234f")
	assert.True(t, verified)
	assert.Equal(t, "ABCDE1234F", normalized)
}

func TestValidatePANRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"ABCDE1234",    // too short
		"ABCDE12345F",  // too long
		"ABCD61234F",   // digit in the alpha block
		"ABCDE123AF",   // letter in the digit block
		"ABCDE12341",   // digit in the trailing position
		"ABCDE 1234F",  // whitespace
		"1BCDE1234F",   // leading digit
	}
	for _, input := range bad {
		_, verified := ValidatePAN(input)
		assert.False(t, verified, "input %q", input)
	}
}

func TestValidateAadhaarFormat(t *testing.T) {
	assert.True(t, ValidateAadhaarFormat("123456789012"))
	assert.False(t, ValidateAadhaarFormat("12345678901"))
	assert.False(t, ValidateAadhaarFormat("1234567890123"))
	assert.False(t, ValidateAadhaarFormat("12345678901a"))
	assert.False(t, ValidateAadhaarFormat(""))
}

func TestValidateIFSC(t *testing.T) {
	normalized, msg := ValidateIFSC("sbin0000001")
	assert.Empty(t, msg)
	assert.Equal(t, "SBIN0000001", normalized)

	_, msg = ValidateIFSC("SBIN1000001") // fifth character must be zero
	assert.Equal(t, "Invalid IFSC (SBIN0000001)", msg)

	_, msg = ValidateIFSC("SBI00000001")
	assert.NotEmpty(t, msg)
}

func TestValidateAccountNumber(t *testing.T) {
	assert.Empty(t, ValidateAccountNumber("12345678901"))
	assert.Equal(t, "Minimum 11 digits", ValidateAccountNumber("1234567890"))
	assert.Equal(t, "Digits only", ValidateAccountNumber("12345abc901"))
}

func TestNewChallengeCodeRange(t *testing.T) {
	src := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		challenge := NewChallenge(models.OTPPurposeLogin, src)
		require.Len(t, challenge.Code, 6)

		code, err := strconv.Atoi(challenge.Code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, 100000)
		assert.LessOrEqual(t, code, 999999)
	}
}

func TestVerifyChallengeExactMatchOnly(t *testing.T) {
	src := rand.New(rand.NewSource(7))
	challenge := NewChallenge(models.OTPPurposeLogin, src)

	assert.False(t, VerifyChallenge(challenge, challenge.Code[:5]))
	assert.False(t, VerifyChallenge(challenge, challenge.Code+"1"))
	assert.False(t, VerifyChallenge(challenge, "000000"))
	assert.False(t, challenge.Consumed, "failed attempts must not consume the challenge")

	assert.True(t, VerifyChallenge(challenge, challenge.Code))
	assert.True(t, challenge.Consumed)

	// a consumed challenge never verifies again
	assert.False(t, VerifyChallenge(challenge, challenge.Code))
}

func TestVerifyChallengeNil(t *testing.T) {
	assert.False(t, VerifyChallenge(nil, "123456"))
}
