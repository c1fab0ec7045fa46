package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawliet8886/RPA/constants"
	"github.com/lawliet8886/RPA/internal/registry"
)

type fakeRecognizer struct {
	texts map[string]string // storageRef -> recognized text
	err   error
}

func (f *fakeRecognizer) Recognize(_ context.Context, storageRef, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.texts[storageRef], nil
}

func TestQueueAppliesRecognizedText(t *testing.T) {
	reg := registry.NewRegistry(nil)
	w, err := reg.CreateWorker("Maria Souza")
	require.NoError(t, err)
	a, err := reg.AddAttachment(w.ID, constants.CategoryCPF, "mem://cpf.jpg", "cpf.jpg", "image/jpeg")
	require.NoError(t, err)

	rec := &fakeRecognizer{texts: map[string]string{"mem://cpf.jpg": "CPF: 529.982.247-25"}}
	q := NewRecognitionQueue(reg, rec, nil, WithWorkers(1))

	require.NoError(t, q.Enqueue(context.Background(), Job{
		WorkerID:     w.ID,
		AttachmentID: a.ID,
		SubmittedAt:  time.Now(),
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	got, err := reg.GetWorker(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", got.Extracted.CPF)

	att, err := reg.GetAttachment(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "CPF: 529.982.247-25", att.OCRText)
}

func TestQueueRecognizerErrorLeavesWorkerUntouched(t *testing.T) {
	reg := registry.NewRegistry(nil)
	w, err := reg.CreateWorker("Maria Souza")
	require.NoError(t, err)
	a, err := reg.AddAttachment(w.ID, constants.CategoryCPF, "mem://cpf.jpg", "cpf.jpg", "image/jpeg")
	require.NoError(t, err)

	rec := &fakeRecognizer{err: errors.New("engine unavailable")}
	q := NewRecognitionQueue(reg, rec, nil, WithWorkers(1))

	require.NoError(t, q.Enqueue(context.Background(), Job{WorkerID: w.ID, AttachmentID: a.ID}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	got, err := reg.GetWorker(w.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Extracted.CPF)
	assert.Nil(t, got.Extracted.ComprovanteEhNominal)
}

func TestQueueEnqueueAfterShutdownIsNoop(t *testing.T) {
	reg := registry.NewRegistry(nil)
	rec := &fakeRecognizer{}
	q := NewRecognitionQueue(reg, rec, nil, WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)
	q.Shutdown(ctx) // idempotent

	assert.NoError(t, q.Enqueue(context.Background(), Job{WorkerID: uuid.New(), AttachmentID: uuid.New()}))
}

type stallingRecognizer struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stallingRecognizer) Recognize(ctx context.Context, _, _ string) (string, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return "", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestQueueShutdownWithFullQueueAndBlockedEnqueue(t *testing.T) {
	reg := registry.NewRegistry(nil)
	w, err := reg.CreateWorker("Maria Souza")
	require.NoError(t, err)

	var jobs []Job
	for i := 0; i < 3; i++ {
		a, err := reg.AddAttachment(w.ID, constants.CategoryDocTitular, "mem://doc", "doc.jpg", "image/jpeg")
		require.NoError(t, err)
		jobs = append(jobs, Job{WorkerID: w.ID, AttachmentID: a.ID})
	}

	rec := &stallingRecognizer{started: make(chan struct{}), release: make(chan struct{})}
	q := NewRecognitionQueue(reg, rec, nil, WithWorkers(1), WithQueueSize(1))

	// first job occupies the worker, second fills the buffer
	require.NoError(t, q.Enqueue(context.Background(), jobs[0]))
	<-rec.started
	require.NoError(t, q.Enqueue(context.Background(), jobs[1]))

	// third enqueue hits backpressure and blocks
	blocked := make(chan struct{})
	go func() {
		defer close(blocked)
		_ = q.Enqueue(context.Background(), jobs[2])
	}()
	time.Sleep(20 * time.Millisecond)

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(rec.release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	select {
	case <-blocked:
	case <-time.After(time.Second):
		t.Fatal("backpressured enqueue never returned after shutdown")
	}
}

func TestQueueDrainsBacklogOnShutdown(t *testing.T) {
	reg := registry.NewRegistry(nil)
	w, err := reg.CreateWorker("Maria Souza")
	require.NoError(t, err)

	texts := map[string]string{}
	var jobs []Job
	for i, body := range []string{"PIS 120.28747.10-4", "Agência: 1234 Conta: 56789-0"} {
		ref := "mem://doc" + string(rune('A'+i))
		texts[ref] = body
		a, err := reg.AddAttachment(w.ID, constants.CategoryDocTitular, ref, "doc.jpg", "image/jpeg")
		require.NoError(t, err)
		jobs = append(jobs, Job{WorkerID: w.ID, AttachmentID: a.ID})
	}

	q := NewRecognitionQueue(reg, &fakeRecognizer{texts: texts}, nil, WithWorkers(2), WithQueueSize(4))
	for _, j := range jobs {
		require.NoError(t, q.Enqueue(context.Background(), j))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	got, err := reg.GetWorker(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "120.28747.10-4", got.Extracted.PISPasep)
	assert.Equal(t, "1234", got.Extracted.BancoAgencia)
	assert.Equal(t, "56789-0", got.Extracted.BancoConta)
}
