package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jylee2/exercise-tracker/internal"
)

// FileStorage holds all users in memory and persists them to a single JSON
// file with a debounced background writer. Used in development and tests.
type FileStorage struct {
	users         map[string]*internal.User // id hex -> User
	usernameIndex map[string]string         // username -> id hex
	order         []string                  // id hex in creation order
	mu            sync.RWMutex
	usersFile     string
	saveChan      chan struct{}
	shutdownChan  chan struct{}
	workerDone    chan struct{}
	saveDelay     time.Duration
	logger        internal.Logger
}

func NewFileStorage(usersFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:         make(map[string]*internal.User),
		usernameIndex: make(map[string]string),
		usersFile:     usersFile,
		saveChan:      make(chan struct{}, 1),
		shutdownChan:  make(chan struct{}),
		workerDone:    make(chan struct{}),
		saveDelay:     500 * time.Millisecond,
		logger:        logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		id := u.ID.Hex()
		s.users[id] = u
		s.usernameIndex[u.Username] = id
		s.order = append(s.order, id)
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveUsers() error {
	// Snapshot deep copies under the lock; AppendExercise mutates stored
	// logs in place, so encoding the live structs after unlock would race.
	s.mu.RLock()
	users := make([]*internal.User, 0, len(s.order))
	for _, id := range s.order {
		u := s.users[id]
		snapshot := *u
		snapshot.Log = append([]internal.Exercise{}, u.Log...)
		users = append(users, &snapshot)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.usersFile, users)
}

func (s *FileStorage) saveWorker() {
	defer close(s.workerDone)
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveUsers(); err != nil {
				s.logger.Errorf("storage: error saving users: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signalSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

func (s *FileStorage) Close(ctx context.Context) error {
	close(s.shutdownChan)
	// Wait for the worker so the final flush cannot overlap an in-flight
	// save on the same temp file.
	<-s.workerDone
	return s.saveUsers()
}

func (s *FileStorage) CreateUser(ctx context.Context, user *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The index check and insert happen under one lock, so a racing create
	// with the same username cannot slip through.
	if _, taken := s.usernameIndex[user.Username]; taken {
		return ErrUsernameTaken
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Log == nil {
		user.Log = []internal.Exercise{}
	}

	id := user.ID.Hex()
	stored := *user
	stored.Log = append([]internal.Exercise{}, user.Log...)
	s.users[id] = &stored
	s.usernameIndex[user.Username] = id
	s.order = append(s.order, id)
	s.signalSave()
	return nil
}

func (s *FileStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]internal.User, 0, len(s.order))
	for _, id := range s.order {
		u := s.users[id]
		users = append(users, internal.User{ID: u.ID, Username: u.Username})
	}
	return users, nil
}

func (s *FileStorage) FindUserByID(ctx context.Context, id string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := *u
	found.Log = append([]internal.Exercise{}, u.Log...)
	return &found, nil
}

func (s *FileStorage) AppendExercise(ctx context.Context, id string, entry *internal.Exercise) (*internal.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Log = append(u.Log, *entry)
	s.signalSave()
	return &internal.User{ID: u.ID, Username: u.Username}, nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*FileStorage)(nil)
