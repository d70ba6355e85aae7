package main

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/crypto/scrypt"
	"golang.org/x/crypto/ssh/terminal"
)

const (
	scrN         = 32768
	scrR         = 8
	scrP         = 1
	scrKeyLength = 32
	saltLength   = 32
)

// ErrDecrypt is returned when an encrypted message is too short to contain
// its salt and iv.
var ErrDecrypt = errors.New("encrypted message is corrupted")

// prompts on stderr and reads the password with echo off
func terminalPassword() ([]byte, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := terminal.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	return pw, err
}

// encrypts the message with a key derived from the password.
// The result is salt | iv | ciphertext.
func encryptMessage(password, data []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(password, salt, scrN, scrR, scrP, scrKeyLength)
	if err != nil {
		return nil, err
	}
	cipherText, err := encrypt(key, data)
	if err != nil {
		return nil, err
	}
	return append(salt, cipherText...), nil
}

// reverses encryptMessage
func decryptMessage(password, data []byte) ([]byte, error) {
	if len(data) < saltLength+aes.BlockSize {
		return nil, ErrDecrypt
	}
	key, err := scrypt.Key(password, data[:saltLength], scrN, scrR, scrP, scrKeyLength)
	if err != nil {
		return nil, err
	}
	return decrypt(key, data[saltLength:])
}

// AES-256-CFB with a random iv prepended to the ciphertext
func encrypt(key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, aes.BlockSize+len(data))
	if _, err := io.ReadFull(rand.Reader, out[:aes.BlockSize]); err != nil {
		return nil, err
	}
	cipher.NewCFBEncrypter(block, out[:aes.BlockSize]).XORKeyStream(out[aes.BlockSize:], data)
	return out, nil
}

func decrypt(key, data []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if len(data) < aes.BlockSize {
		return nil, ErrDecrypt
	}
	plain := make([]byte, len(data)-aes.BlockSize)
	cipher.NewCFBDecrypter(block, data[:aes.BlockSize]).XORKeyStream(plain, data[aes.BlockSize:])
	return plain, nil
}
