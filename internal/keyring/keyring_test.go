package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://testuser@localhost:5432/alog?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestEntriesAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("secret-key"); err != nil {
		t.Fatalf("SetAPIKey() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	got, err := GetAPIKey()
	if err != nil || got != "secret-key" {
		t.Errorf("GetAPIKey() = %q, %v", got, err)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	for _, e := range []Entry{ConnectionString, APIKey} {
		if err := Set(e, ""); err == nil {
			t.Errorf("Set(%s, \"\") should return an error", e)
		}
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://u@localhost/alog"); err != nil {
		t.Fatal(err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete, error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no dbus"))
	defer gokeyring.MockInit()

	if _, err := GetAPIKey(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetAPIKey() error = %v, want %v", err, ErrKeyringUnavailable)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true with failing keyring")
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() should be true with mock keyring")
	}
}

func TestEntryString(t *testing.T) {
	if ConnectionString.String() != "connection string" || APIKey.String() != "API key" {
		t.Errorf("unexpected entry names: %s, %s", ConnectionString, APIKey)
	}
}
