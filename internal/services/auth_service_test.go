package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthr_backend/internal/models"
	"smarthr_backend/internal/repositories"
	"smarthr_backend/internal/sms"
)

// recordingEnqueuer captures tasks instead of running them, so tests can
// assert what was queued and drive execution by hand.
type recordingEnqueuer struct {
	names []string
	fns   []func(ctx context.Context)
	full  bool
}

func (e *recordingEnqueuer) Enqueue(name string, task func(ctx context.Context)) bool {
	if e.full {
		return false
	}
	e.names = append(e.names, name)
	e.fns = append(e.fns, task)
	return true
}

func (e *recordingEnqueuer) runAll() {
	for _, fn := range e.fns {
		fn(context.Background())
	}
}

type stubUserRepo struct {
	repositories.UserRepository

	user         *models.User
	verification *models.PhoneVerification
}

func (s *stubUserRepo) FindByID(id string) (*models.User, error) {
	return s.user, nil
}

func (s *stubUserRepo) FindByPhone(phone string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (s *stubUserRepo) CreatePhoneVerification(v *models.PhoneVerification) error {
	s.verification = v
	return nil
}

func newPhoneCodeService(repo *stubUserRepo, provider sms.Provider, tasks TaskEnqueuer) AuthService {
	return NewAuthService(repo, nil, nil, provider, time.Hour, tasks)
}

func TestSendPhoneCode_DeliversOffTheRequestCycle(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{BaseModel: models.BaseModel{ID: "u1"}}}
	provider := sms.NewMockProvider()
	queue := &recordingEnqueuer{}

	svc := newPhoneCodeService(repo, provider, queue)
	require.NoError(t, svc.SendPhoneCode(context.Background(), "u1", "+77010000001"))

	// The code is stored and the send is queued, not yet delivered
	require.NotNil(t, repo.verification)
	assert.Equal(t, []string{"phone-verification-sms"}, queue.names)
	assert.Empty(t, provider.Messages())

	queue.runAll()

	msg, ok := provider.LastMessage()
	require.True(t, ok)
	assert.Equal(t, "+77010000001", msg.To)
	assert.Contains(t, msg.Body, repo.verification.Code)
}

func TestSendPhoneCode_SendsInlineWhenPoolFull(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{BaseModel: models.BaseModel{ID: "u1"}}}
	provider := sms.NewMockProvider()

	svc := newPhoneCodeService(repo, provider, &recordingEnqueuer{full: true})
	require.NoError(t, svc.SendPhoneCode(context.Background(), "u1", "+77010000002"))

	msg, ok := provider.LastMessage()
	require.True(t, ok)
	assert.Equal(t, "+77010000002", msg.To)
}
