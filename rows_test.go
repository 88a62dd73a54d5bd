package authturso

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRows(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"id", "email"},
		Rows: [][]any{
			{"u1", "ann@x.com"},
			{"u2", "bob@x.com"},
		},
	}

	rows := mapRows(rs)
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]any{"id": "u1", "email": "ann@x.com"}, rows[0])
	assert.Equal(t, map[string]any{"id": "u2", "email": "bob@x.com"}, rows[1])
}

func TestMapRowsEmpty(t *testing.T) {
	rows := mapRows(&ResultSet{Columns: []string{"id"}})
	assert.Empty(t, rows)
}

func TestMapOneRow(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"id"},
		Rows:    [][]any{{"u1"}},
	}

	assert.Equal(t, map[string]any{"id": "u1"}, mapOneRow(rs))
	assert.Nil(t, mapOneRow(&ResultSet{Columns: []string{"id"}}))
}

func TestSerializeTime(t *testing.T) {
	instant := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	row := serializeTime(map[string]any{"expires": instant}, "expires")
	assert.Equal(t, "2025-01-01T00:00:00.000Z", row["expires"])
}

func TestSerializeTimePointer(t *testing.T) {
	instant := time.Date(2030, 6, 15, 12, 30, 45, 123_000_000, time.UTC)

	row := serializeTime(map[string]any{"emailVerified": &instant}, "emailVerified")
	assert.Equal(t, "2030-06-15T12:30:45.123Z", row["emailVerified"])
}

func TestSerializeTimeAbsent(t *testing.T) {
	row := serializeTime(map[string]any{}, "emailVerified")
	assert.Nil(t, row["emailVerified"])

	row = serializeTime(map[string]any{"emailVerified": (*time.Time)(nil)}, "emailVerified")
	assert.Nil(t, row["emailVerified"])
}

func TestDeserializeTime(t *testing.T) {
	row, err := deserializeTime(map[string]any{"expires": "2025-01-01T00:00:00.000Z"}, "expires")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), row["expires"])
}

func TestDeserializeTimeNull(t *testing.T) {
	row, err := deserializeTime(map[string]any{"emailVerified": nil}, "emailVerified")
	require.NoError(t, err)
	assert.Nil(t, row["emailVerified"])

	_, err = deserializeTime(map[string]any{}, "emailVerified")
	assert.NoError(t, err)
}

func TestDeserializeTimeMalformed(t *testing.T) {
	_, err := deserializeTime(map[string]any{"expires": "not a timestamp"}, "expires")

	var malformed *MalformedTimestampError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "expires", malformed.Column)
	assert.Equal(t, "not a timestamp", malformed.Value)
}

func TestTimeRoundTrip(t *testing.T) {
	instant := time.Date(2026, 8, 31, 23, 59, 59, 999_000_000, time.UTC)

	row := serializeTime(map[string]any{"expires": instant}, "expires")
	row, err := deserializeTime(row, "expires")
	require.NoError(t, err)
	assert.True(t, instant.Equal(row["expires"].(time.Time)))
}
