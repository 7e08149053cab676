package index

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/windy003/photo-gallery/common/rcontext"
	"github.com/windy003/photo-gallery/metrics"
	"github.com/windy003/photo-gallery/types"
)

// date_added is stored in seconds, matching the platform media store.
const selectImagesNewestFirst = "SELECT id, location, date_added FROM images ORDER BY date_added DESC, location ASC;"

type SqlIndex struct {
	db                      *sql.DB
	driver                  string
	selectImagesNewestFirst *sql.Stmt
}

func OpenSqlIndex(driver string, dsn string) (*SqlIndex, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "index: opening "+driver)
	}
	idx, err := NewSqlIndex(db, driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return idx, nil
}

// NewSqlIndex prepares the listing query against an existing connection. The
// images table must already exist.
func NewSqlIndex(db *sql.DB, driver string) (*SqlIndex, error) {
	stmt, err := db.Prepare(selectImagesNewestFirst)
	if err != nil {
		return nil, errors.Wrap(err, "index: preparing selectImagesNewestFirst")
	}
	return &SqlIndex{db: db, driver: driver, selectImagesNewestFirst: stmt}, nil
}

func (s *SqlIndex) List(ctx rcontext.RequestContext) ([]types.ImageRef, error) {
	rows, err := s.selectImagesNewestFirst.QueryContext(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "index: querying images")
	}
	defer rows.Close()

	refs := make([]types.ImageRef, 0)
	for rows.Next() {
		var ref types.ImageRef
		var addedSeconds int64
		if err = rows.Scan(&ref.Id, &ref.Location, &addedSeconds); err != nil {
			return nil, errors.Wrap(err, "index: scanning row")
		}
		ref.AddedTs = addedSeconds * 1000
		refs = append(refs, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "index: reading rows")
	}

	// Keep the tie order identical to other backends regardless of collation
	types.SortNewestFirst(refs)
	metrics.ImagesIndexed.With(prometheus.Labels{"index": s.driver}).Set(float64(len(refs)))
	ctx.Log.Infof("Indexed %d images from %s", len(refs), s.driver)
	return refs, nil
}

func (s *SqlIndex) Close() error {
	_ = s.selectImagesNewestFirst.Close()
	return s.db.Close()
}
