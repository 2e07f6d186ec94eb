package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/dao/exit"
)

// Service stores exit records as JSON files under baseURL/<runID>/<pid>.json.
type Service struct {
	baseURL string
	fs      afs.Service
	logger  logrus.FieldLogger
	mu      sync.RWMutex
}

var _ dao.Service[string, process.Exit] = (*Service)(nil)

// Save persists a record
func (s *Service) Save(ctx context.Context, record *process.Exit) error {
	if record == nil {
		return dao.ErrNilEntity
	}
	if record.RunID == "" || record.PID <= 0 {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal exit record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.recordURL(record.Key())
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save exit record to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a record by its "<runID>/<pid>" key
func (s *Service) Load(ctx context.Context, id string) (*process.Exit, error) {
	if !validKey(id) {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	URL := s.recordURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check exit record %s: %w", URL, err)
	}
	if !exists {
		return nil, fmt.Errorf("exit record %s: %w", id, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read exit record %s: %w", URL, err)
	}
	ret := &process.Exit{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exit record %s: %w", URL, err)
	}
	return ret, nil
}

// Delete removes a record
func (s *Service) Delete(ctx context.Context, id string) error {
	if !validKey(id) {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.recordURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check exit record %s: %w", URL, err)
	}
	if !exists {
		return fmt.Errorf("exit record %s: %w", id, dao.ErrNotFound)
	}
	if err = s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete exit record %s: %w", URL, err)
	}
	return nil
}

// List returns matching records ordered by finish time. Unreadable files are
// logged and skipped.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Exit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exists, err := s.fs.Exists(ctx, s.baseURL)
	if err != nil || !exists {
		return []*process.Exit{}, err
	}
	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list exit records: %w", err)
	}
	var ret = make([]*process.Exit, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			s.logger.WithError(err).WithField("url", object.URL()).Warn("failed to read exit record")
			continue
		}
		record := &process.Exit{}
		if err = json.Unmarshal(data, record); err != nil {
			s.logger.WithError(err).WithField("url", object.URL()).Warn("failed to unmarshal exit record")
			continue
		}
		if exit.Matches(record, parameters) {
			ret = append(ret, record)
		}
	}
	exit.Sort(ret)
	return ret, nil
}

func (s *Service) recordURL(key string) string {
	return url.Join(s.baseURL, key+".json")
}

func validKey(id string) bool {
	runID, pid := path.Split(id)
	return runID != "" && pid != ""
}

// New creates a filesystem exit record store rooted at baseURL
func New(baseURL string, options ...Option) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	ret := &Service{baseURL: url.Normalize(baseURL, file.Scheme)}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = logrus.StandardLogger()
	}
	return ret, nil
}
