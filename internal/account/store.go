package account

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"github.com/skulk-project/skulk/internal/errcode"
	"github.com/skulk-project/skulk/internal/workspace"
)

// Store persists the registry as a JSON array in accounts.json.
//
// Writers take an exclusive flock on a sidecar lock file and replace
// the registry atomically (temp file, fsync, rename), so readers
// never observe a torn file and held locks survive the rename.
// Create, Update, and Delete hold the lock across their whole
// read-modify-write cycle; plain Load is lock-free.
type Store struct {
	ws *workspace.Workspace
}

// NewStore returns a store over the given workspace.
func NewStore(ws *workspace.Workspace) *Store {
	return &Store{ws: ws}
}

// Load reads the registry, creating the data layout and an empty
// registry file on first use. A file that does not parse as a JSON
// array fails with code 1006.
func (s *Store) Load() ([]Account, error) {
	if err := s.ws.EnsureDirs(); err != nil {
		return nil, err
	}
	return s.read()
}

// Save replaces the registry contents under the write lock.
func (s *Store) Save(accounts []Account) error {
	return s.withLock(func() error {
		return s.write(accounts)
	})
}

// Create validates a full payload, mints the account, and appends it
// under the write lock. Returns the stored account.
func (s *Store) Create(p Payload) (*Account, error) {
	cleaned, err := Validate(p, false)
	if err != nil {
		return nil, err
	}
	var acc Account
	err = s.withLock(func() error {
		accounts, err := s.read()
		if err != nil {
			return err
		}
		acc = New(cleaned, s.ws.ProfilesDir())
		return s.write(append(accounts, acc))
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Update validates a partial payload and applies it to the account
// in a locked read-modify-write. With checkVersion set, a payload
// version that does not match the stored one fails with
// *ConflictError and nothing is written. An unknown id fails with
// code 1002. Returns the updated account.
func (s *Store) Update(id string, p Payload, checkVersion bool) (*Account, error) {
	cleaned, err := Validate(p, true)
	if err != nil {
		return nil, err
	}
	var updated Account
	err = s.withLock(func() error {
		accounts, err := s.read()
		if err != nil {
			return err
		}
		target := Find(accounts, id)
		if target == nil {
			return errcode.NotFound(id)
		}
		if err := Apply(target, cleaned, checkVersion); err != nil {
			return err
		}
		updated = *target
		return s.write(accounts)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the account from the registry under the write lock.
// The registry is rewritten even when the id is absent, so a delete
// always settles the file. Returns the removed account, or nil when
// the id was not present.
func (s *Store) Delete(id string) (*Account, error) {
	var removed *Account
	err := s.withLock(func() error {
		accounts, err := s.read()
		if err != nil {
			return err
		}
		kept := make([]Account, 0, len(accounts))
		for _, acc := range accounts {
			if acc.ID == id {
				a := acc
				removed = &a
				continue
			}
			kept = append(kept, acc)
		}
		return s.write(kept)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Store) withLock(fn func() error) error {
	if err := s.ws.EnsureDirs(); err != nil {
		return err
	}
	lock := flock.New(s.ws.LockFile())
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking registry: %w", err)
	}
	defer lock.Unlock()
	return fn()
}

func (s *Store) read() ([]Account, error) {
	path := s.ws.AccountsFile()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Account{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var accounts []Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, errcode.Wrap(errcode.StoreCorrupt, "accounts.json is not valid JSON", err)
	}
	for i := range accounts {
		if accounts[i].Proxy == nil {
			accounts[i].Proxy = map[string]Proxy{}
		}
	}
	return accounts, nil
}

func (s *Store) write(accounts []Account) error {
	if accounts == nil {
		accounts = []Account{}
	}
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}
	data = append(data, '\n')

	path := s.ws.AccountsFile()
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
