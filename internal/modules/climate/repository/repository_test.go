package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Minimal schema matching the hawaii.sqlite layout for in-memory tests.
const testSchema = `
CREATE TABLE IF NOT EXISTS measurement (
  id      INTEGER PRIMARY KEY,
  station TEXT NOT NULL,
  date    TEXT NOT NULL,
  prcp    REAL,
  tobs    REAL
);

CREATE TABLE IF NOT EXISTS station (
  id        INTEGER PRIMARY KEY,
  station   TEXT NOT NULL,
  name      TEXT NOT NULL,
  latitude  REAL,
  longitude REAL,
  elevation REAL
);
`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// every pooled connection would get its own :memory: database
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			t.Fatalf("close db: %v", closeErr)
		}
		t.Fatalf("exec schema: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Errorf("close db: %v", closeErr)
		}
	})
	return db
}

func seedMeasurements(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO measurement (station, date, prcp, tobs) VALUES
		('USC00519397', '2016-08-22', 0.40, 76.0),
		('USC00519397', '2016-08-23', 0.00, 81.0),
		('USC00513117', '2016-08-23', 0.15, 76.0),
		('USC00519397', '2017-08-20', NULL, 77.0),
		('USC00519397', '2017-08-21', 0.00, 79.0),
		('USC00516128', '2017-08-22', 0.50, 80.0),
		('USC00519397', '2017-08-23', 0.00, 81.0)
	`)
	if err != nil {
		t.Fatalf("insert measurements: %v", err)
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestNewRepository(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	if repo == nil {
		t.Fatal("NewRepository returned nil")
	}
}

func TestLatestDate(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		_, err := repo.LatestDate(context.Background())
		if !errors.Is(err, ErrNoObservations) {
			t.Fatalf("LatestDate: err = %v; want ErrNoObservations", err)
		}
	})

	t.Run("returns max date", func(t *testing.T) {
		db := setupTestDB(t)
		seedMeasurements(t, db)
		repo := NewRepository(db)

		got, err := repo.LatestDate(context.Background())
		if err != nil {
			t.Fatalf("LatestDate: %v", err)
		}
		if want := mustDate(t, "2017-08-23"); !got.Equal(want) {
			t.Errorf("LatestDate = %v; want %v", got, want)
		}
	})

	t.Run("malformed date is an error", func(t *testing.T) {
		db := setupTestDB(t)
		if _, err := db.Exec(`INSERT INTO measurement (station, date, tobs) VALUES ('X', 'yesterday', 70)`); err != nil {
			t.Fatalf("insert: %v", err)
		}
		repo := NewRepository(db)
		if _, err := repo.LatestDate(context.Background()); err == nil {
			t.Fatal("LatestDate: err = nil; want parse error")
		}
	})
}

func TestGetPrecipitation(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		got, err := repo.GetPrecipitation(context.Background())
		if err != nil {
			t.Fatalf("GetPrecipitation: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("GetPrecipitation = %v; want empty non-nil slice", got)
		}
	})

	t.Run("one entry per row with nulls kept", func(t *testing.T) {
		db := setupTestDB(t)
		seedMeasurements(t, db)
		repo := NewRepository(db)

		got, err := repo.GetPrecipitation(context.Background())
		if err != nil {
			t.Fatalf("GetPrecipitation: %v", err)
		}
		if len(got) != 7 {
			t.Fatalf("GetPrecipitation: got %d rows, want 7", len(got))
		}
		var nulls int
		for _, p := range got {
			if _, err := time.Parse("2006-01-02", p.Date); err != nil {
				t.Errorf("date %q is not ISO-8601: %v", p.Date, err)
			}
			if p.Precipitation == nil {
				nulls++
				if p.Date != "2017-08-20" {
					t.Errorf("unexpected null precipitation on %s", p.Date)
				}
			}
		}
		if nulls != 1 {
			t.Errorf("null precipitation rows = %d; want 1", nulls)
		}
		if got[0].Date != "2016-08-22" || *got[0].Precipitation != 0.40 {
			t.Errorf("first row = %s/%v; want 2016-08-22/0.40", got[0].Date, got[0].Precipitation)
		}
	})
}

func TestGetStations(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		repo := NewRepository(setupTestDB(t))
		stations, err := repo.GetStations(context.Background())
		if err != nil {
			t.Fatalf("GetStations: %v", err)
		}
		if len(stations) != 0 {
			t.Fatalf("GetStations: got %d stations, want 0", len(stations))
		}
	})

	t.Run("one per station row", func(t *testing.T) {
		db := setupTestDB(t)
		_, err := db.Exec(`
			INSERT INTO station (station, name, latitude, longitude, elevation) VALUES
			('USC00519397', 'WAIKIKI 717.2, HI US', 21.2716, -157.8168, 3.0),
			('USC00513117', 'KANEOHE 838.1, HI US', 21.4234, -157.8015, 14.6),
			('USC00514830', 'KUALOA RANCH HEADQUARTERS 886.9, HI US', 21.5213, -157.8374, 7.0)
		`)
		if err != nil {
			t.Fatalf("insert stations: %v", err)
		}
		repo := NewRepository(db)

		stations, err := repo.GetStations(context.Background())
		if err != nil {
			t.Fatalf("GetStations: %v", err)
		}
		if len(stations) != 3 {
			t.Fatalf("GetStations: got %d stations, want 3", len(stations))
		}
		// ordered by station id
		if stations[0].ID != "USC00513117" || stations[0].Name != "KANEOHE 838.1, HI US" {
			t.Errorf("first station = %+v", stations[0])
		}
	})
}

func TestGetTemperaturesSince(t *testing.T) {
	db := setupTestDB(t)
	seedMeasurements(t, db)
	repo := NewRepository(db)

	got, err := repo.GetTemperaturesSince(context.Background(), mustDate(t, "2017-08-21"))
	if err != nil {
		t.Fatalf("GetTemperaturesSince: %v", err)
	}
	want := []string{"2017-08-21", "2017-08-22", "2017-08-23"}
	if len(got) != len(want) {
		t.Fatalf("GetTemperaturesSince: got %d rows, want %d", len(got), len(want))
	}
	for i, d := range want {
		if got[i].Date != d {
			t.Errorf("row %d date = %s; want %s", i, got[i].Date, d)
		}
	}

	t.Run("after last date is empty", func(t *testing.T) {
		got, err := repo.GetTemperaturesSince(context.Background(), mustDate(t, "2018-01-01"))
		if err != nil {
			t.Fatalf("GetTemperaturesSince: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d rows, want 0", len(got))
		}
	})
}

func TestGetTemperaturesBetween(t *testing.T) {
	db := setupTestDB(t)
	seedMeasurements(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("inclusive bounds ascending", func(t *testing.T) {
		got, err := repo.GetTemperaturesBetween(ctx, mustDate(t, "2017-08-20"), mustDate(t, "2017-08-22"))
		if err != nil {
			t.Fatalf("GetTemperaturesBetween: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d rows, want 3", len(got))
		}
		if got[0].Temperature != 77 || got[1].Temperature != 79 || got[2].Temperature != 80 {
			t.Errorf("temperatures = %v", got)
		}
	})

	t.Run("same day shared by stations", func(t *testing.T) {
		got, err := repo.GetTemperaturesBetween(ctx, mustDate(t, "2016-08-23"), mustDate(t, "2016-08-23"))
		if err != nil {
			t.Fatalf("GetTemperaturesBetween: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d rows, want 2", len(got))
		}
	})

	t.Run("start after end is empty", func(t *testing.T) {
		got, err := repo.GetTemperaturesBetween(ctx, mustDate(t, "2017-08-23"), mustDate(t, "2017-08-20"))
		if err != nil {
			t.Fatalf("GetTemperaturesBetween: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("got %d rows, want 0", len(got))
		}
	})

	t.Run("full range covers every observation", func(t *testing.T) {
		got, err := repo.GetTemperaturesBetween(ctx, mustDate(t, "2016-08-22"), mustDate(t, "2017-08-23"))
		if err != nil {
			t.Fatalf("GetTemperaturesBetween: %v", err)
		}
		if len(got) != 7 {
			t.Fatalf("got %d rows, want 7", len(got))
		}
	})
}

func TestQueries_CanceledContext(t *testing.T) {
	db := setupTestDB(t)
	seedMeasurements(t, db)
	repo := NewRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.GetStations(ctx); err == nil {
		t.Error("GetStations with canceled context: err = nil")
	}
	if _, err := repo.GetTemperaturesSince(ctx, mustDate(t, "2017-01-01")); err == nil {
		t.Error("GetTemperaturesSince with canceled context: err = nil")
	}
}

// Ensure repo implements the interface.
var _ ClimateRepository = (*repositoryImpl)(nil)
