package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/answerhub/backend/internal/dto"
	"github.com/answerhub/backend/internal/model"
	"github.com/answerhub/backend/internal/repository"
)

// fakeStore is an in-memory stand-in for the persistence layer. A single
// mutex keeps each repository call atomic; the services' own keyed locks
// provide the cross-call serialization under test.
type fakeStore struct {
	mu        sync.Mutex
	users     map[uint]model.User
	questions map[uint]model.Question
	answers   map[uint]model.Answer
	comments  map[uint]model.Comment
	votes     map[uint]model.Vote
	bookmarks map[uint]model.Bookmark
	nextID    uint

	// voteCreateConflicts makes the next N vote inserts fail the way a
	// unique index violation does.
	voteCreateConflicts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uint]model.User),
		questions: make(map[uint]model.Question),
		answers:   make(map[uint]model.Answer),
		comments:  make(map[uint]model.Comment),
		votes:     make(map[uint]model.Vote),
		bookmarks: make(map[uint]model.Bookmark),
	}
}

func (s *fakeStore) allocateID() uint {
	s.nextID++
	return s.nextID
}

type fakeRepositories struct {
	store *fakeStore
}

func newFakeRepositories(store *fakeStore) repository.Repositories {
	return &fakeRepositories{store: store}
}

func (f *fakeRepositories) User() repository.UserRepository {
	return &fakeUserRepository{store: f.store}
}

func (f *fakeRepositories) Vote() repository.VoteRepository {
	return &fakeVoteRepository{store: f.store}
}

func (f *fakeRepositories) Target() repository.TargetRepository {
	return &fakeTargetRepository{store: f.store}
}

func (f *fakeRepositories) Question() repository.QuestionRepository {
	return &fakeQuestionRepository{store: f.store}
}

func (f *fakeRepositories) Bookmark() repository.BookmarkRepository {
	return &fakeBookmarkRepository{store: f.store}
}

func (f *fakeRepositories) Transaction(_ context.Context, fn func(tx repository.Repositories) error) error {
	return fn(f)
}

type fakeUserRepository struct {
	store *fakeStore
}

func (r *fakeUserRepository) GetByID(id uint) (model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("%w: user %d", dto.ErrNotFound, id)
	}
	return user, nil
}

func (r *fakeUserRepository) GetByFirebaseUID(uid string) (model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.FirebaseUID == uid {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("%w: firebase uid %s", dto.ErrNotFound, uid)
}

func (r *fakeUserRepository) Create(user model.User) (model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user.ID = r.store.allocateID()
	r.store.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepository) Save(user model.User) (model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepository) AdjustReputation(id uint, points int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	user, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", dto.ErrNotFound, id)
	}
	user.Reputation += points
	r.store.users[id] = user
	return nil
}

type fakeVoteRepository struct {
	store *fakeStore
}

func (r *fakeVoteRepository) FindByVoterAndTarget(voterID uint, kind model.TargetKind, targetID uint) (model.Vote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, vote := range r.store.votes {
		if vote.VoterID == voterID && vote.TargetKind == kind && vote.TargetID == targetID {
			return vote, nil
		}
	}
	return model.Vote{}, fmt.Errorf("%w: vote by user %d on %s %d", dto.ErrNotFound, voterID, kind, targetID)
}

func (r *fakeVoteRepository) Create(vote model.Vote) (model.Vote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.voteCreateConflicts > 0 {
		r.store.voteCreateConflicts--
		return model.Vote{}, fmt.Errorf("%w: duplicated key", dto.ErrConflict)
	}
	for _, existing := range r.store.votes {
		if existing.VoterID == vote.VoterID && existing.TargetKind == vote.TargetKind && existing.TargetID == vote.TargetID {
			return model.Vote{}, fmt.Errorf("%w: duplicated key", dto.ErrConflict)
		}
	}
	vote.ID = r.store.allocateID()
	r.store.votes[vote.ID] = vote
	return vote, nil
}

func (r *fakeVoteRepository) Save(vote model.Vote) (model.Vote, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.votes[vote.ID] = vote
	return vote, nil
}

func (r *fakeVoteRepository) Delete(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.votes[id]; !ok {
		return fmt.Errorf("%w: vote %d", dto.ErrNotFound, id)
	}
	delete(r.store.votes, id)
	return nil
}

func (r *fakeVoteRepository) SumDirections(kind model.TargetKind, targetID uint) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sum := 0
	for _, vote := range r.store.votes {
		if vote.TargetKind == kind && vote.TargetID == targetID {
			sum += vote.Direction.Unit()
		}
	}
	return sum, nil
}

type fakeTargetRepository struct {
	store *fakeStore
}

func (r *fakeTargetRepository) Get(kind model.TargetKind, id uint) (repository.TargetRef, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	switch kind {
	case model.TargetQuestion:
		if question, ok := r.store.questions[id]; ok {
			return repository.TargetRef{OwnerID: question.AuthorID, VoteCount: question.VoteCount}, nil
		}
	case model.TargetAnswer:
		if answer, ok := r.store.answers[id]; ok {
			return repository.TargetRef{OwnerID: answer.AuthorID, VoteCount: answer.VoteCount}, nil
		}
	case model.TargetComment:
		if comment, ok := r.store.comments[id]; ok {
			return repository.TargetRef{OwnerID: comment.AuthorID, VoteCount: comment.VoteCount}, nil
		}
	default:
		return repository.TargetRef{}, fmt.Errorf("%w: %d", dto.ErrInvalidTargetKind, kind)
	}
	return repository.TargetRef{}, fmt.Errorf("%w: %s %d", dto.ErrNotFound, kind, id)
}

func (r *fakeTargetRepository) AdjustVoteCount(kind model.TargetKind, id uint, delta int) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	switch kind {
	case model.TargetQuestion:
		if question, ok := r.store.questions[id]; ok {
			question.VoteCount += delta
			r.store.questions[id] = question
			return question.VoteCount, nil
		}
	case model.TargetAnswer:
		if answer, ok := r.store.answers[id]; ok {
			answer.VoteCount += delta
			r.store.answers[id] = answer
			return answer.VoteCount, nil
		}
	case model.TargetComment:
		if comment, ok := r.store.comments[id]; ok {
			comment.VoteCount += delta
			r.store.comments[id] = comment
			return comment.VoteCount, nil
		}
	default:
		return 0, fmt.Errorf("%w: %d", dto.ErrInvalidTargetKind, kind)
	}
	return 0, fmt.Errorf("%w: %s %d", dto.ErrNotFound, kind, id)
}

type fakeQuestionRepository struct {
	store *fakeStore
}

func (r *fakeQuestionRepository) GetByID(id uint) (model.Question, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	question, ok := r.store.questions[id]
	if !ok {
		return model.Question{}, fmt.Errorf("%w: question %d", dto.ErrNotFound, id)
	}
	return question, nil
}

func (r *fakeQuestionRepository) GetAnswer(id uint) (model.Answer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	answer, ok := r.store.answers[id]
	if !ok {
		return model.Answer{}, fmt.Errorf("%w: answer %d", dto.ErrNotFound, id)
	}
	return answer, nil
}

func (r *fakeQuestionRepository) SetBestAnswer(questionID uint, answerID *uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	question, ok := r.store.questions[questionID]
	if !ok {
		return fmt.Errorf("%w: question %d", dto.ErrNotFound, questionID)
	}
	question.BestAnswerID = answerID
	r.store.questions[questionID] = question
	return nil
}

type fakeBookmarkRepository struct {
	store *fakeStore
}

func (r *fakeBookmarkRepository) FindByUserAndTarget(userID uint, kind model.TargetKind, targetID uint) (model.Bookmark, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, bookmark := range r.store.bookmarks {
		if bookmark.UserID == userID && bookmark.TargetKind == kind && bookmark.TargetID == targetID {
			return bookmark, nil
		}
	}
	return model.Bookmark{}, fmt.Errorf("%w: bookmark by user %d on %s %d", dto.ErrNotFound, userID, kind, targetID)
}

func (r *fakeBookmarkRepository) Create(bookmark model.Bookmark) (model.Bookmark, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	bookmark.ID = r.store.allocateID()
	r.store.bookmarks[bookmark.ID] = bookmark
	return bookmark, nil
}

func (r *fakeBookmarkRepository) Delete(id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookmarks[id]; !ok {
		return fmt.Errorf("%w: bookmark %d", dto.ErrNotFound, id)
	}
	delete(r.store.bookmarks, id)
	return nil
}

// fakeRabbit records published notification payloads.
type fakeRabbit struct {
	mu       sync.Mutex
	messages [][]byte
}

func (r *fakeRabbit) PublishMessage(message []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeRabbit) Close() error {
	return nil
}

func (r *fakeRabbit) published() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// fixture wires the services over the fake store the way NewServices wires
// them over gorm.
type fixture struct {
	store               *fakeStore
	repositories        repository.Repositories
	rabbit              *fakeRabbit
	reputationService   ReputationService
	notificationService NotificationService
	voteService         VoteService
	bestAnswerService   BestAnswerService
	bookmarkService     BookmarkService
}

func newFixture() *fixture {
	store := newFakeStore()
	repositories := newFakeRepositories(store)
	rabbit := &fakeRabbit{}
	notificationService := newNotificationService(rabbit)
	reputationService := newReputationService(repositories.User())
	return &fixture{
		store:               store,
		repositories:        repositories,
		rabbit:              rabbit,
		reputationService:   reputationService,
		notificationService: notificationService,
		voteService:         newVoteService(repositories, reputationService, notificationService),
		bestAnswerService:   newBestAnswerService(repositories, reputationService, notificationService),
		bookmarkService:     newBookmarkService(repositories),
	}
}

func (f *fixture) seedUser(id uint) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.users[id] = model.User{ID: id, FirebaseUID: fmt.Sprintf("uid-%d", id), Email: fmt.Sprintf("user%d@example.com", id)}
	if id > f.store.nextID {
		f.store.nextID = id
	}
}

func (f *fixture) seedQuestion(id, authorID uint) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.questions[id] = model.Question{ID: id, AuthorID: authorID, Title: fmt.Sprintf("question %d", id)}
	if id > f.store.nextID {
		f.store.nextID = id
	}
}

func (f *fixture) seedAnswer(id, questionID, authorID uint) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.answers[id] = model.Answer{ID: id, QuestionID: questionID, AuthorID: authorID}
	if id > f.store.nextID {
		f.store.nextID = id
	}
}

func (f *fixture) reputation(id uint) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.users[id].Reputation
}

func (f *fixture) voteCount(kind model.TargetKind, id uint) int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	switch kind {
	case model.TargetQuestion:
		return f.store.questions[id].VoteCount
	case model.TargetAnswer:
		return f.store.answers[id].VoteCount
	default:
		return f.store.comments[id].VoteCount
	}
}

func (f *fixture) voteRecords(kind model.TargetKind, id uint) []model.Vote {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var records []model.Vote
	for _, vote := range f.store.votes {
		if vote.TargetKind == kind && vote.TargetID == id {
			records = append(records, vote)
		}
	}
	return records
}
