package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword turns a plaintext password into a bcrypt hash.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 8)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a plaintext password against a bcrypt hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// DeviceEmail derives the pseudo-account email for a device. The device id
// is the only credential the client ever holds.
func DeviceEmail(deviceID string) string {
	return fmt.Sprintf("%s@gainmaster.local", deviceID)
}

// DevicePassword derives the pseudo-account password for a device.
func DevicePassword(deviceID string) string {
	return fmt.Sprintf("pass-%s", deviceID)
}

// DeviceUsername derives the display name assigned at signup.
func DeviceUsername(deviceID string) string {
	if len(deviceID) > 4 {
		deviceID = deviceID[:4]
	}
	return "User-" + deviceID
}
