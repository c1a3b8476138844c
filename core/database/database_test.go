package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "features",
			Driver:         DriverMySQL,
			TimeoutSeconds: 1,
		}

		// Connect should fail (timeout or refused)
		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite In Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", db.Dialector.Name())
	})
}

func TestQuoteIdent(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	assert.Equal(t, "`Differences`", QuoteIdent(db, "Differences"))
}

func TestQuoteDSNValue(t *testing.T) {
	assert.Equal(t, `'p\'w\\d'`, quoteDSNValue(`p'w\d`))
}

func TestCodePointOrder(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	my, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	assert.Equal(t, "CAST(`CODE` AS BINARY)", CodePointOrder(my, "CODE"))

	pg, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	assert.Equal(t, `"CODE" COLLATE "C"`, CodePointOrder(pg, "CODE"))

	lite, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "`CODE` COLLATE BINARY", CodePointOrder(lite, "CODE"))

	require.NoError(t, lite.Exec("CREATE TABLE k (CODE TEXT COLLATE NOCASE)").Error)
	require.NoError(t, lite.Exec("INSERT INTO k VALUES ('b'), ('B'), ('a'), ('_')").Error)

	var codes []string
	require.NoError(t, lite.Raw("SELECT CODE FROM k ORDER BY "+CodePointOrder(lite, "CODE")).Scan(&codes).Error)
	assert.Equal(t, []string{"B", "_", "a", "b"}, codes)
}
