package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"sleepclinic-service/internal/pkg/constvars"
	"strings"
	"time"

	"github.com/google/uuid"
)

const sessionTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSessionToken returns an opaque alphanumeric token drawn from crypto/rand.
func GenerateSessionToken(length int) (string, error) {
	max := big.NewInt(int64(len(sessionTokenAlphabet)))

	token := make([]byte, length)
	for i := range token {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = sessionTokenAlphabet[num.Int64()]
	}

	return string(token), nil
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func GenerateConsentObjectKey(patientID, originalFileName string, now time.Time) string {
	extension := strings.ToLower(filepath.Ext(originalFileName))
	timestamp := now.Format("20060102_150405.000000000")
	return fmt.Sprintf(constvars.ConsentObjectPrefix, patientID, timestamp, extension)
}
