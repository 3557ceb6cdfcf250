package password

import "golang.org/x/crypto/bcrypt"

// MaxBytes is the longest input bcrypt accepts.
const MaxBytes = 72

var ErrTooLong = bcrypt.ErrPasswordTooLong

// dummyHash is compared against when no stored hash exists so that a missing
// account costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("lembretes-dummy-password"), bcrypt.DefaultCost)

func Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// CompareDummy burns one bcrypt comparison and always fails.
func CompareDummy(plain string) error {
	if err := bcrypt.CompareHashAndPassword(dummyHash, []byte(plain)); err != nil {
		return err
	}
	return bcrypt.ErrMismatchedHashAndPassword
}
