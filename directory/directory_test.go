package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"swissclock.ch/swissclock/timeclock"
)

var _ timeclock.Directory = (*Static)(nil)

func defaultUsers() []User {
	return []User{
		{ID: 1, Name: "Miro", Username: "miro", Password: "miro123"},
		{ID: 2, Name: "Shein", Username: "shein", Password: "shein123"},
		{ID: 3, Name: "Aymene", Username: "aymene", Password: "aymene123"},
	}
}

func TestStaticLookup(t *testing.T) {
	d, err := NewStatic(defaultUsers())
	require.NoError(t, err)

	emp, ok := d.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "Shein", emp.Name)

	_, ok = d.Lookup(9)
	assert.False(t, ok)

	assert.Len(t, d.Employees(), 3)
	assert.Equal(t, 1, d.Employees()[0].ID)
}

func TestStaticAuthenticate(t *testing.T) {
	d, err := NewStatic(defaultUsers())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantID   int
		wantErr  bool
	}{
		{name: "Valid", username: "miro", password: "miro123", wantID: 1},
		{name: "Case insensitive username", username: "Aymene", password: "aymene123", wantID: 3},
		{name: "Wrong password", username: "shein", password: "miro123", wantErr: true},
		{name: "Unknown user", username: "nobody", password: "x", wantErr: true},
		{name: "Empty", username: "", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := d.Authenticate(tt.username, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, u.ID)
			assert.Empty(t, u.Password)
		})
	}
}

func TestStaticAcceptsPrehashedPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	d, err := NewStatic([]User{{ID: 5, Name: "Ops", Username: "ops", PasswordHash: hash}})
	require.NoError(t, err)

	_, err = d.Authenticate("ops", "s3cret")
	assert.NoError(t, err)
}

func TestNewStaticRejectsDuplicates(t *testing.T) {
	_, err := NewStatic([]User{{ID: 1, Username: "a"}, {ID: 1, Username: "b"}})
	assert.Error(t, err)

	_, err = NewStatic([]User{{ID: 1, Username: "a"}, {ID: 2, Username: "A"}})
	assert.Error(t, err)

	_, err = NewStatic([]User{{ID: 0, Username: "zero"}})
	assert.Error(t, err)
}

func TestNewEmployeeRecord(t *testing.T) {
	emp, err := newEmployeeRecord(User{ID: 4, Name: "Lea", Username: "lea", Password: "lea123"})
	require.NoError(t, err)
	assert.Equal(t, uint(4), emp.EmployeeId)
	assert.True(t, emp.Active)
	assert.NotEqual(t, "lea123", emp.PasswordHash)

	// the stored hash is what Authenticate checks against
	d, err := NewStatic([]User{{ID: int(emp.EmployeeId), Name: emp.Name, Username: emp.Username, PasswordHash: emp.PasswordHash}})
	require.NoError(t, err)
	_, err = d.Authenticate("lea", "lea123")
	assert.NoError(t, err)

	emp, err = newEmployeeRecord(User{ID: 5, Username: "ops", PasswordHash: "$2a$10$existing"})
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$existing", emp.PasswordHash)
}
