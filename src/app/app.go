package app

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"framedb/src/bufferpool"
	"framedb/src/pkg/common"
	"framedb/src/pkg/utils"
	"framedb/src/storage/file"
)

// Entrypoint wires the buffer pool over a real on-disk file and runs a
// small demonstration workload against it.
type Entrypoint struct {
	Env envVars

	fs   afero.Fs
	log  *zap.SugaredLogger
	pool *bufferpool.Manager
	data *file.File
}

func (e *Entrypoint) Init() error {
	e.Env = mustLoadEnv()

	if e.Env.Environment == EnvDev {
		e.log = utils.Must(zap.NewDevelopment()).Sugar()
	} else {
		e.log = utils.Must(zap.NewProduction()).Sugar()
	}

	e.fs = afero.NewOsFs()
	if err := e.fs.MkdirAll(e.Env.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir %s: %w", e.Env.DataDir, err)
	}

	dataFile, err := file.Open(e.fs, filepath.Join(e.Env.DataDir, "demo.db"))
	if err != nil {
		return err
	}
	e.data = dataFile

	e.pool = bufferpool.New(e.Env.PoolSize, bufferpool.NewDirectory(e.Env.PoolSize))
	e.pool.SetLogger(e.log)

	e.log.Infow("buffer pool ready",
		"pool_size", e.Env.PoolSize,
		"data_file", dataFile.Name(),
		"file_id", dataFile.ID(),
	)

	return nil
}

// Run allocates a handful of pages, dirties them, forces them through
// the cache and flushes the file, logging the pool state along the way.
func (e *Entrypoint) Run() error {
	const demoPages = 8

	var pageNos []common.PageID
	for i := 0; i < demoPages; i++ {
		pg, err := e.pool.NewPage(e.data)
		if err != nil {
			return fmt.Errorf("failed to allocate demo page: %w", err)
		}

		pageNo := pg.Number()
		copy(pg.Data(), fmt.Appendf(nil, "demo page %d", pageNo))
		if err := e.pool.UnpinPage(e.data, pageNo, true); err != nil {
			return err
		}
		pageNos = append(pageNos, pageNo)
	}

	for _, pageNo := range pageNos {
		pg, err := e.pool.GetPage(e.data, pageNo)
		if err != nil {
			return fmt.Errorf("failed to re-read page %d: %w", pageNo, err)
		}

		e.log.Infow("page content",
			"page", pageNo,
			"content", string(pg.Data()[:len(fmt.Sprintf("demo page %d", pageNo))]),
		)
		if err := e.pool.UnpinPage(e.data, pageNo, false); err != nil {
			return err
		}
	}

	if err := e.pool.DisposePage(e.data, pageNos[0]); err != nil {
		return err
	}
	if err := e.pool.FlushFile(e.data); err != nil {
		return err
	}

	fmt.Print(e.pool.Describe())
	return nil
}

func (e *Entrypoint) Close() (err error) {
	if e.pool != nil {
		err = e.pool.Close()
	}

	if e.data != nil {
		if closeErr := e.data.Close(); closeErr != nil && err != nil {
			err = fmt.Errorf("%w, %w", err, closeErr)
		} else if closeErr != nil {
			err = closeErr
		}
	}

	if e.log != nil {
		if err != nil {
			e.log.Errorw("shutdown finished with errors", "error", err)
		}
		_ = e.log.Sync()
	}

	return
}
