package bionet

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/bionet/pkg/logging"
)

const filePermissions = 0o644

// Save writes the whole network to path in the format implied by its
// extension. The document is written to a temporary file in the same
// directory and renamed over path, so a failed save leaves any previous file
// untouched.
func (b *BioNet) Save(path string) error {
	return b.SaveAs(path, FormatFromPath(path))
}

// SaveAs is Save with an explicit format
func (b *BioNet) SaveAs(path string, format Format) error {
	timer := logging.StartTimer(b.logger, "network saved", logging.Path(path), logging.String("format", format.String()))

	err := b.save(path, format)
	elapsed := timer.Elapsed()
	if err != nil {
		timer.EndError(err)
	} else {
		timer.End(logging.Count(len(b.nodes) + len(b.edges)))
	}
	if b.metrics != nil {
		b.metrics.RecordPersistence("save", elapsed, err)
	}
	return err
}

func (b *BioNet) save(path string, format Format) error {
	data, err := b.Marshal(format)
	if err != nil {
		return NewError("save").File(path).Cause(fmt.Errorf("failed to encode network: %w", err)).Err()
	}
	if err := writeFileAtomic(path, data); err != nil {
		return NewError("save").File(path).Cause(fmt.Errorf("%w: %w", ErrIO, err)).Err()
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp-"+uuid.NewString())

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermissions)
	if err != nil {
		return err
	}
	cleanup := func(cause error) error {
		f.Close()
		os.Remove(tmpPath)
		return cause
	}

	if _, err := f.Write(data); err != nil {
		return cleanup(err)
	}
	if err := f.Sync(); err != nil {
		return cleanup(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Load reads a network saved by Save. The id counter of the returned
// network is max(id)+1 over its nodes and edges.
//
// File system failures wrap ErrIO (and the underlying *fs.PathError);
// undecodable or inconsistent content wraps ErrMalformed.
func Load(path string, opts ...Option) (*BioNet, error) {
	return LoadAs(path, FormatFromPath(path), opts...)
}

// LoadAs is Load with an explicit format
func LoadAs(path string, format Format, opts ...Option) (*BioNet, error) {
	start := time.Now()
	b, err := load(path, format, opts...)
	if err != nil {
		// no network was built; apply the options to an empty one to reach
		// the configured logger and metrics
		cfg := New("", opts...)
		cfg.logger.Error("network load failed", logging.Path(path), logging.Error(err))
		if cfg.metrics != nil {
			cfg.metrics.RecordPersistence("load", time.Since(start), err)
		}
		return nil, err
	}

	b.logger.Debug("network loaded", logging.Path(path), logging.Count(len(b.nodes)+len(b.edges)), logging.Latency(time.Since(start)))
	if b.metrics != nil {
		b.metrics.RecordPersistence("load", time.Since(start), nil)
		b.metrics.UpdateNetworkSize(len(b.nodes), len(b.edges), len(b.parameters))
	}
	return b, nil
}

func load(path string, format Format, opts ...Option) (*BioNet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewError("load").File(path).Cause(fmt.Errorf("%w: %w", ErrIO, err)).Err()
	}
	b, err := Unmarshal(data, format, opts...)
	if err != nil {
		return nil, NewError("load").File(path).Cause(err).Err()
	}
	return b, nil
}
