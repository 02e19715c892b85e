package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	m, err := NewMember("Ana", "111")
	require.NoError(t, err)

	assert.Equal(t, "Ana", m.Name)
	assert.Equal(t, "111", m.ExternalID)
	assert.Len(t, m.ID, 36)
	assert.Empty(t, m.Accounts())

	other, err := NewMember("Ana", "111")
	require.NoError(t, err)
	assert.NotEqual(t, m.ID, other.ID, "internal ids are generated fresh")
}

func TestNewMember_Errors(t *testing.T) {
	_, err := NewMember("", "111")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewMember("Ana", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMemberAddAccount(t *testing.T) {
	m, err := NewMember("Ana", "111")
	require.NoError(t, err)

	s1 := newSavings(t, "S1", "0", "1")
	c1 := newChecking(t, "C1", "0")
	require.NoError(t, m.AddAccount(s1))
	require.NoError(t, m.AddAccount(c1))

	accts := m.Accounts()
	require.Len(t, accts, 2)
	assert.Same(t, s1, accts[0])
	assert.Same(t, c1, accts[1])
}

func TestMemberAddAccount_Duplicate(t *testing.T) {
	m, err := NewMember("Ana", "111")
	require.NoError(t, err)
	require.NoError(t, m.AddAccount(newSavings(t, "S1", "0", "1")))

	err = m.AddAccount(newChecking(t, "S1", "5"))
	require.ErrorIs(t, err, ErrDuplicateAccount)
	assert.Len(t, m.Accounts(), 1)
}

func TestMemberAddAccount_Nil(t *testing.T) {
	m, err := NewMember("Ana", "111")
	require.NoError(t, err)
	assert.ErrorIs(t, m.AddAccount(nil), ErrInvalidArgument)
	assert.ErrorIs(t, m.AddAccount((*SavingsAccount)(nil)), ErrInvalidArgument)
	assert.Empty(t, m.Accounts())
}

func TestMemberFindAccount(t *testing.T) {
	m, err := NewMember("Ana", "111")
	require.NoError(t, err)
	s1 := newSavings(t, "S1", "0", "1")
	require.NoError(t, m.AddAccount(s1))

	got, ok := m.FindAccount("S1")
	assert.True(t, ok)
	assert.Same(t, s1, got)

	_, ok = m.FindAccount("missing")
	assert.False(t, ok)
}
