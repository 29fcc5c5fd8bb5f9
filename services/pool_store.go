package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/hanzala183/goSwim/metrics"
	"github.com/hanzala183/goSwim/models"
	"github.com/hanzala183/goSwim/utils/errors"
)

// bboxDegrees is the half-width of the coordinate match box. A flat box on
// raw degrees (about 111 m of latitude at the equator, less longitude at
// higher latitudes), not geodesically corrected -- unlike the haversine
// distance used for ranking. Known limitation, kept on purpose.
const bboxDegrees = 0.001

const seedFile = "./data/seed-pools.json"

// haversineSQL computes kilometers from the query point ($1, $2) to a row,
// same formula and Earth radius as HaversineDistance so store-computed and
// locally computed distances rank together.
const haversineSQL = `(6371 * 2 * atan2(
		sqrt(
			pow(sin(radians($1 - latitude) / 2), 2) +
			cos(radians($1)) * cos(radians(latitude)) *
			pow(sin(radians($2 - longitude) / 2), 2)
		),
		sqrt(1 - (
			pow(sin(radians($1 - latitude) / 2), 2) +
			cos(radians($1)) * cos(radians(latitude)) *
			pow(sin(radians($2 - longitude) / 2), 2)
		))
	))`

const poolColumns = `id, pool_name, address, city, COALESCE(postal_code, ''),
	latitude, longitude, COALESCE(api_endpoint, ''), COALESCE(contact_number, ''),
	COALESCE(email, ''), COALESCE(opening_hours, '{}'), lifeguard_available,
	emergency_equipment_available, cctv_installed, changing_rooms_available,
	locker_facility`

// PoolStore is the data access layer for the operator-owned swimming_pools
// table. All methods are read-only apart from startup seeding.
type PoolStore struct {
	db *sql.DB
}

// MatchedPool is a record found for an external feature, with the
// store-computed distance in kilometers from the query point.
type MatchedPool struct {
	Pool     models.SwimmingPool
	Distance float64
}

func NewPoolStore(dsn string) (*PoolStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	log.Println("Connected to Postgres")

	s := &PoolStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.seedIfEmpty(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PoolStore) Close() error { return s.db.Close() }

func (s *PoolStore) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS swimming_pools (
			id SERIAL PRIMARY KEY,
			pool_name VARCHAR(255) NOT NULL,
			address TEXT NOT NULL,
			city VARCHAR(100) NOT NULL,
			postal_code VARCHAR(20),
			latitude DECIMAL(10, 8),
			longitude DECIMAL(11, 8),
			api_endpoint TEXT,
			contact_number VARCHAR(20),
			email VARCHAR(255),
			opening_hours JSONB,
			lifeguard_available BOOLEAN DEFAULT false,
			emergency_equipment_available BOOLEAN DEFAULT false,
			cctv_installed BOOLEAN DEFAULT false,
			changing_rooms_available BOOLEAN DEFAULT false,
			locker_facility BOOLEAN DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pool_name ON swimming_pools(pool_name);
		CREATE INDEX IF NOT EXISTS idx_city ON swimming_pools(city);
	`)
	return err
}

// seedIfEmpty loads demonstration records from the seed file the first time
// the service runs against an empty table.
func (s *PoolStore) seedIfEmpty() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM swimming_pools").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("No pools found in database, seeding sample data...")
	file, err := os.Open(seedFile)
	if err != nil {
		return err
	}
	defer file.Close()

	var pools []models.SwimmingPool
	if err := json.NewDecoder(file).Decode(&pools); err != nil {
		return err
	}
	for _, p := range pools {
		hours, err := json.Marshal(p.OpeningHours)
		if err != nil {
			return err
		}
		_, err = s.db.Exec(`
			INSERT INTO swimming_pools (
				pool_name, address, city, postal_code, latitude, longitude,
				api_endpoint, contact_number, email, opening_hours,
				lifeguard_available, emergency_equipment_available,
				cctv_installed, changing_rooms_available, locker_facility
			) VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13, $14, $15)`,
			p.PoolName, p.Address, p.City, p.PostalCode, p.Latitude, p.Longitude,
			p.APIEndpoint, p.ContactNumber, p.Email, hours,
			p.LifeguardAvailable, p.EmergencyEquipmentAvailable,
			p.CCTVInstalled, p.ChangingRoomsAvailable, p.LockerFacility,
		)
		if err != nil {
			return err
		}
	}
	log.Printf("Seeded %d pools into database", len(pools))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPool(row rowScanner, extra ...any) (*models.SwimmingPool, error) {
	var p models.SwimmingPool
	var hoursRaw []byte
	dest := []any{
		&p.ID, &p.PoolName, &p.Address, &p.City, &p.PostalCode,
		&p.Latitude, &p.Longitude, &p.APIEndpoint, &p.ContactNumber,
		&p.Email, &hoursRaw, &p.LifeguardAvailable,
		&p.EmergencyEquipmentAvailable, &p.CCTVInstalled,
		&p.ChangingRoomsAvailable, &p.LockerFacility,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hoursRaw, &p.OpeningHours); err != nil {
		return nil, err
	}
	return &p, nil
}

func storeError(err error) error {
	metrics.StoreFailuresTotal.Inc()
	return errors.Wrap(err, errors.ErrStoreUnavailable.Code, errors.ErrStoreUnavailable.Message, errors.ErrStoreUnavailable.Status)
}

// MatchPool finds at most one record for an external feature: pool_name and
// the feature name match case-insensitively as substrings in either
// direction, or the record sits inside the coordinate box around the
// feature. LIMIT 1 with no ORDER BY keeps the store-defined order when
// several records satisfy the predicate -- which record wins is undefined.
// The distance column uses the query point, not the feature's.
// Returns nil without error when nothing matches.
func (s *PoolStore) MatchPool(ctx context.Context, name string, featLat, featLng, queryLat, queryLng float64) (*MatchedPool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+poolColumns+`, `+haversineSQL+` AS distance
		FROM swimming_pools
		WHERE (pool_name ILIKE '%' || $3 || '%' OR $3 ILIKE '%' || pool_name || '%')
		OR (latitude BETWEEN $4 AND $5 AND longitude BETWEEN $6 AND $7)
		LIMIT 1`,
		queryLat, queryLng, name,
		featLat-bboxDegrees, featLat+bboxDegrees,
		featLng-bboxDegrees, featLng+bboxDegrees,
	)
	var distance float64
	pool, err := scanPool(row, &distance)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err)
	}
	return &MatchedPool{Pool: *pool, Distance: distance}, nil
}

// SearchPools is the free-text fallback: substring match over name, city and
// address.
func (s *PoolStore) SearchPools(ctx context.Context, query string) ([]models.SwimmingPool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+poolColumns+`
		FROM swimming_pools
		WHERE pool_name ILIKE $1 OR city ILIKE $1 OR address ILIKE $1`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	var pools []models.SwimmingPool
	for rows.Next() {
		pool, err := scanPool(rows)
		if err != nil {
			return nil, storeError(err)
		}
		pools = append(pools, *pool)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return pools, nil
}

// AllPools returns every record with has_live_data computed in SQL, ordered
// by name. Feeds the tier-2 fallback listing.
func (s *PoolStore) AllPools(ctx context.Context) ([]models.UnifiedPoolResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+poolColumns+`,
		CASE WHEN api_endpoint IS NOT NULL AND api_endpoint != '' THEN true ELSE false END AS has_live_data
		FROM swimming_pools
		ORDER BY pool_name`,
	)
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	var results []models.UnifiedPoolResult
	for rows.Next() {
		var hasLiveData bool
		pool, err := scanPool(rows, &hasLiveData)
		if err != nil {
			return nil, storeError(err)
		}
		results = append(results, models.UnifiedPoolResult{
			SwimmingPool: *pool,
			HasLiveData:  hasLiveData,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err)
	}
	return results, nil
}

// GetPool returns a single record by id, or nil when it does not exist.
func (s *PoolStore) GetPool(ctx context.Context, id int) (*models.SwimmingPool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+poolColumns+`
		FROM swimming_pools
		WHERE id = $1`,
		id,
	)
	pool, err := scanPool(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeError(err)
	}
	return pool, nil
}
