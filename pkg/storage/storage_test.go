package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendReadWrite(t *testing.T) {
	b := NewMemory()

	_, ok, err := b.Read(KeyCustomers)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Write(KeyCustomers, `[{"id":"cust_1"}]`))
	value, ok, err := b.Read(KeyCustomers)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"cust_1"}]`, value)

	// Writes replace, not append
	require.NoError(t, b.Write(KeyCustomers, `[]`))
	value, _, _ = b.Read(KeyCustomers)
	assert.Equal(t, `[]`, value)

	assert.NoError(t, b.Close())
}

func TestMemoryBackendInjectedErrors(t *testing.T) {
	b := NewMemory()
	b.ReadErr = errors.New("read broken")
	b.WriteErr = errors.New("write broken")

	_, _, err := b.Read(KeyTasks)
	assert.Error(t, err)
	assert.Error(t, b.Write(KeyTasks, "[]"))
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	b, err := OpenSQLite(path)
	require.NoError(t, err)
	defer b.Close()

	_, ok, err := b.Read(KeySettings)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Write(KeySettings, `{"userName":"Ravi"}`))
	require.NoError(t, b.Write(KeySettings, `{"userName":"Asha"}`))

	value, ok, err := b.Read(KeySettings)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"userName":"Asha"}`, value)
}

func TestSQLiteBackendPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	b, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, b.Write(KeyProducts, `["Product A"]`))
	require.NoError(t, b.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Read(KeyProducts)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["Product A"]`, value)
}
