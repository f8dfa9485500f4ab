package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bananai/brokerage/core/logger"
	"github.com/bananai/brokerage/core/model"
)

// FileBatchStore keeps one JSON record per batch id in a directory.
type FileBatchStore struct {
	dir string
	mu  sync.Mutex
	log logger.Logger
}

// NewFileBatchStore creates the directory if needed.
func NewFileBatchStore(dir string, log logger.Logger) (*FileBatchStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileBatchStore{dir: dir, log: log}, nil
}

// LoadAll scans the directory for batch records. A corrupt or malformed
// record is skipped with a warning; it never fails the whole load.
func (s *FileBatchStore) LoadAll(ctx context.Context) ([]*model.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var batches []*model.Batch
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(s.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warnf("skipping unreadable batch record %s: %v", e.Name(), err)
			continue
		}
		b, err := decodeBatch(data)
		if err != nil {
			s.log.Warnf("skipping malformed batch record %s: %v", e.Name(), err)
			continue
		}
		batches = append(batches, b)
	}
	return batches, nil
}

// Save overwrites the record for the batch id. The write is staged to a
// temp file and finalized with a rename so a crash never leaves a
// half-written record.
func (s *FileBatchStore) Save(_ context.Context, b *model.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := encodeBatch(b)
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(s.dir, b.ID+".json"), data)
}

// Close implements store.BatchStore.
func (s *FileBatchStore) Close() error { return nil }

// FileReceiptStore writes per-order receipts and manifests.
type FileReceiptStore struct {
	receiptsDir  string
	manifestsDir string
}

// NewFileReceiptStore creates both directories if needed.
func NewFileReceiptStore(receiptsDir, manifestsDir string) (*FileReceiptStore, error) {
	for _, dir := range []string{receiptsDir, manifestsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &FileReceiptStore{receiptsDir: receiptsDir, manifestsDir: manifestsDir}, nil
}

// SaveReceipt persists the full invoice snapshot, one file per order id.
func (s *FileReceiptStore) SaveReceipt(_ context.Context, inv model.Invoice) error {
	data, err := encodeInvoice(inv)
	if err != nil {
		return err
	}
	return writeAtomic(filepath.Join(s.receiptsDir, inv.OrderID+".json"), data)
}

// WriteManifest stores the rendered bill of lading.
func (s *FileReceiptStore) WriteManifest(_ context.Context, orderID, content string) error {
	name := fmt.Sprintf("MANIFEST_%s.txt", orderID)
	return writeAtomic(filepath.Join(s.manifestsDir, name), []byte(content))
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
