package service

import (
	"strings"
	"time"

	"warranty/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MemberSubjectPrefix marks token subjects that name a store member.
// Unprefixed subjects name an owner account.
const MemberSubjectPrefix = "store_member_"

// ErrMalformedSubject is returned when a token subject is not a known id format.
var ErrMalformedSubject = errors.New("malformed token subject")

// TokenSubject is the principal a token was issued to.
type TokenSubject struct {
	Kind entity.AccountKind
	ID   uuid.UUID
}

// String encodes the subject as stored in the token's "sub" claim.
func (s TokenSubject) String() string {
	if s.Kind == entity.AccountKindMember {
		return MemberSubjectPrefix + s.ID.String()
	}

	return s.ID.String()
}

// ParseTokenSubject decodes a "sub" claim.
func ParseTokenSubject(sub string) (TokenSubject, error) {
	kind := entity.AccountKindOwner
	if rest, ok := strings.CutPrefix(sub, MemberSubjectPrefix); ok {
		kind = entity.AccountKindMember
		sub = rest
	}

	id, err := uuid.Parse(sub)
	if err != nil || id == uuid.Nil {
		return TokenSubject{}, ErrMalformedSubject
	}

	return TokenSubject{Kind: kind, ID: id}, nil
}

// Claims are the validated contents of a bearer token.
type Claims struct {
	Subject   TokenSubject
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken signs a token for the subject.
	GenerateToken(subject TokenSubject) (string, error)

	// ValidateToken checks signature, expiry and subject format.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenTTL returns how long issued tokens stay valid.
	TokenTTL() time.Duration
}
