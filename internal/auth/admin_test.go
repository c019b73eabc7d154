package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testAdminEmail = "admin@alcuin.ch"
	// sha256 of "test-password"
	testAdminPasswordSha256 = "c638833f69bbfb3c267afa0a74434812436b8f08a81fd263c6be6871de4f1265"
	// bcrypt of "testpass"
	testAdminPasswordBcrypt = "$2a$14$6Gmhg85si2etd3K9oB8nYu1cxfbrdmhkg6wI6OXsa88IF4L2r/L9i"
)

func TestAdmin_Verify_Sha256Hash(t *testing.T) {
	admin := Admin{
		Email:        testAdminEmail,
		PasswordHash: testAdminPasswordSha256,
	}

	assert.True(t, admin.Verify(testAdminEmail, "test-password"))

	// single character mutations of either input must fail
	assert.False(t, admin.Verify("Admin@alcuin.ch", "test-password"))
	assert.False(t, admin.Verify("admin@alcuin.cc", "test-password"))
	assert.False(t, admin.Verify(testAdminEmail, "test-passworD"))
	assert.False(t, admin.Verify(testAdminEmail, "test-passwor"))

	// malformed input is just a non-match, never a panic
	assert.False(t, admin.Verify("", ""))
	assert.False(t, admin.Verify(testAdminEmail, ""))
	assert.False(t, admin.Verify("", "test-password"))
}

func TestAdmin_Verify_BcryptHash(t *testing.T) {
	admin := Admin{
		Email:        testAdminEmail,
		PasswordHash: testAdminPasswordBcrypt,
	}

	assert.True(t, admin.Verify(testAdminEmail, "testpass"))
	assert.False(t, admin.Verify(testAdminEmail, "testpass2"))
	assert.False(t, admin.Verify("other@alcuin.ch", "testpass"))
}

func TestAdmin_Verify_UppercaseSha256Hash(t *testing.T) {
	admin := Admin{
		Email:        testAdminEmail,
		PasswordHash: "C638833F69BBFB3C267AFA0A74434812436B8F08A81FD263C6BE6871DE4F1265",
	}
	assert.True(t, admin.Verify(testAdminEmail, "test-password"))
}
