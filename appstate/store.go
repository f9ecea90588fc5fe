// Package appstate persists a borrower's application state through the
// key-value collaborator. Each sub-record is saved and loaded independently
// under its own key; together they compose the ApplicationState aggregate.
package appstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"lend/models"
	"lend/store"
)

// Logical record keys. "@BasicInfoData", "loanDetails" and "userOtp" are the
// durable contract inherited from the mobile client; the rest persist state
// the client used to hold in memory so a session can resume server-side.
const (
	KeyBasicInfo  = "@BasicInfoData"
	KeyLoan       = "loanDetails"
	KeyLoginOTP   = "userOtp"
	KeyAadhaarOTP = "aadhaarOtp"
	KeyEmployment = "employmentProfile"
	KeyDocuments  = "kycDocuments"
)

// StoreError wraps a persistence failure. It is always recoverable: the
// caller surfaces a try-again condition and the workflow does not advance.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("appstate: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Store reads and writes one borrower's application state. All keys are
// namespaced by the borrower's mobile number. Writes are serialized so two
// rapid saves of different sub-records cannot corrupt one another.
type Store struct {
	mu     sync.Mutex
	kv     store.KeyValueStore
	prefix string
}

// New returns a Store scoped to the given mobile number.
func New(kv store.KeyValueStore, mobile string) *Store {
	return &Store{kv: kv, prefix: mobile + ":"}
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

// load unmarshals the record under name into out. Returns false when nothing
// is persisted yet.
func (s *Store) load(name string, out interface{}) (bool, error) {
	raw, err := s.kv.Get(s.key(name))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return false, nil
		}
		return false, &StoreError{Op: "get", Key: name, Err: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, &StoreError{Op: "decode", Key: name, Err: err}
	}
	return true, nil
}

// save marshals and writes one sub-record as a single atomic merge: only the
// named record changes, everything else is untouched.
func (s *Store) save(name string, in interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(in)
	if err != nil {
		return &StoreError{Op: "encode", Key: name, Err: err}
	}
	if err := s.kv.Set(s.key(name), raw); err != nil {
		return &StoreError{Op: "set", Key: name, Err: err}
	}
	return nil
}

func (s *Store) delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(s.key(name)); err != nil {
		return &StoreError{Op: "delete", Key: name, Err: err}
	}
	return nil
}

// Load composes the full aggregate from the persisted sub-records. Absent
// records stay nil, so a brand-new mobile yields the zero-value aggregate.
func (s *Store) Load() (*models.ApplicationState, error) {
	state := &models.ApplicationState{}

	var basic models.BasicInfoData
	if ok, err := s.load(KeyBasicInfo, &basic); err != nil {
		return nil, err
	} else if ok {
		state.BasicInfo = &basic
	}

	var employment models.EmploymentProfile
	if ok, err := s.load(KeyEmployment, &employment); err != nil {
		return nil, err
	} else if ok {
		state.Employment = &employment
	}

	var documents models.KycDocuments
	if ok, err := s.load(KeyDocuments, &documents); err != nil {
		return nil, err
	} else if ok {
		state.Documents = &documents
	}

	var loan models.LoanRecord
	if ok, err := s.load(KeyLoan, &loan); err != nil {
		return nil, err
	} else if ok {
		state.Loan = &loan
	}

	var loginOTP models.OTPChallenge
	if ok, err := s.load(KeyLoginOTP, &loginOTP); err != nil {
		return nil, err
	} else if ok {
		state.LoginOTP = &loginOTP
	}

	var aadhaarOTP models.OTPChallenge
	if ok, err := s.load(KeyAadhaarOTP, &aadhaarOTP); err != nil {
		return nil, err
	} else if ok {
		state.AadhaarOTP = &aadhaarOTP
	}

	return state, nil
}

// SaveBasicInfo persists the identity + bank record.
func (s *Store) SaveBasicInfo(data *models.BasicInfoData) error {
	return s.save(KeyBasicInfo, data)
}

// SaveEmployment persists the professional-info record.
func (s *Store) SaveEmployment(profile *models.EmploymentProfile) error {
	return s.save(KeyEmployment, profile)
}

// SaveDocuments persists the KYC document slots.
func (s *Store) SaveDocuments(docs *models.KycDocuments) error {
	return s.save(KeyDocuments, docs)
}

// SaveLoan persists the loan record.
func (s *Store) SaveLoan(loan *models.LoanRecord) error {
	return s.save(KeyLoan, loan)
}

// SaveLoginOTP replaces the pending login challenge.
func (s *Store) SaveLoginOTP(challenge *models.OTPChallenge) error {
	return s.save(KeyLoginOTP, challenge)
}

// ClearLoginOTP removes the login challenge after verification.
func (s *Store) ClearLoginOTP() error {
	return s.delete(KeyLoginOTP)
}

// SaveAadhaarOTP replaces the pending Aadhaar challenge.
func (s *Store) SaveAadhaarOTP(challenge *models.OTPChallenge) error {
	return s.save(KeyAadhaarOTP, challenge)
}

// LoadLoginOTP fetches just the pending login challenge.
func (s *Store) LoadLoginOTP() (*models.OTPChallenge, error) {
	var challenge models.OTPChallenge
	ok, err := s.load(KeyLoginOTP, &challenge)
	if err != nil || !ok {
		return nil, err
	}
	return &challenge, nil
}

// LoadAadhaarOTP fetches just the pending Aadhaar challenge.
func (s *Store) LoadAadhaarOTP() (*models.OTPChallenge, error) {
	var challenge models.OTPChallenge
	ok, err := s.load(KeyAadhaarOTP, &challenge)
	if err != nil || !ok {
		return nil, err
	}
	return &challenge, nil
}
