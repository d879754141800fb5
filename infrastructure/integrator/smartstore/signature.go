package smartstore

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blowfish"
)

// A API de commerce da Naver exige client_secret_sign =
// base64(bcrypt("{client_id}_{timestamp_ms}", salt=client_secret)).
// O client_secret é o próprio salt bcrypt ("$2a$NN$...").
//
// x/crypto/bcrypt não aceita salt externo, então o algoritmo é
// reproduzido aqui sobre x/crypto/blowfish.

const bcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var bcryptEncoding = base64.NewEncoding(bcryptAlphabet).WithPadding(base64.NoPadding)

var magicCipherData = []byte("OrpheanBeholderScryDoubt")

// Sign gera o client_secret_sign para o timestamp informado (ms).
func Sign(clientID, clientSecret string, timestampMS int64) (string, error) {
	password := fmt.Sprintf("%s_%d", clientID, timestampMS)

	hashed, err := bcryptWithSalt([]byte(password), clientSecret)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(hashed), nil
}

func bcryptWithSalt(password []byte, saltString string) ([]byte, error) {
	parts := strings.Split(saltString, "$")
	if len(parts) < 4 || !strings.HasPrefix(parts[1], "2") {
		return nil, errors.New("client_secret não está no formato de salt bcrypt")
	}

	version := parts[1]

	cost, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, errors.Wrap(err, "custo do salt bcrypt ilegível")
	}

	if len(parts[3]) < 22 {
		return nil, errors.New("salt bcrypt curto demais")
	}

	saltChars := parts[3][:22]

	salt, err := bcryptEncoding.DecodeString(saltChars)
	if err != nil {
		return nil, errors.Wrap(err, "salt bcrypt ilegível")
	}

	// bcrypt inclui o byte nulo terminador na chave
	key := append(password[:len(password):len(password)], 0)
	if len(key) > 72 {
		key = key[:72]
	}

	cipher, err := expensiveBlowfishSetup(key, salt, uint(cost))
	if err != nil {
		return nil, err
	}

	cipherData := make([]byte, len(magicCipherData))
	copy(cipherData, magicCipherData)

	for i := 0; i < len(cipherData); i += 8 {
		for j := 0; j < 64; j++ {
			cipher.Encrypt(cipherData[i:i+8], cipherData[i:i+8])
		}
	}

	// bcrypt codifica apenas os 23 primeiros bytes do ciphertext
	hash := fmt.Sprintf("$%s$%02d$%s%s",
		version, cost, saltChars, bcryptEncoding.EncodeToString(cipherData[:23]))

	return []byte(hash), nil
}

func expensiveBlowfishSetup(key, salt []byte, cost uint) (*blowfish.Cipher, error) {
	cipher, err := blowfish.NewSaltedCipher(key, salt)
	if err != nil {
		return nil, err
	}

	rounds := uint64(1) << cost
	for i := uint64(0); i < rounds; i++ {
		blowfish.ExpandKey(key, cipher)
		blowfish.ExpandKey(salt, cipher)
	}

	return cipher, nil
}
