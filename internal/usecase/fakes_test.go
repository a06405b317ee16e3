package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"unimarket/internal/domain/entity"
	"unimarket/internal/infrastructure/firebase"
	"unimarket/pkg/errors"
)

type fakeItemRepo struct {
	mu        sync.Mutex
	items     map[string]*entity.Item
	existsErr map[string]error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{
		items:     map[string]*entity.Item{},
		existsErr: map[string]error{},
	}
}

// failExists makes the existence check for one item return an error.
func (r *fakeItemRepo) failExists(id string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.existsErr[id] = err
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == "" {
		item.ID = "item-" + time.Now().Format("150405.000000000")
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	if item.Status == "" {
		item.Status = entity.ItemStatusSelling
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Item not found", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeItemRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Item
	for _, item := range r.items {
		if v, ok := filter["category"]; ok && item.Category != v {
			continue
		}
		if v, ok := filter["status"]; ok && item.Status != v {
			continue
		}
		if v, ok := filter["authorId"]; ok && item.AuthorID != v {
			continue
		}
		copied := *item
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := int64(len(matched))
	if offset > 0 {
		if offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[offset:]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeItemRepo) Search(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Item, int64, error) {
	all, _, err := r.List(ctx, filter, 0, 0)
	if err != nil {
		return nil, 0, err
	}
	query = strings.ToLower(query)
	var matched []*entity.Item
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			matched = append(matched, item)
		}
	}
	total := int64(len(matched))
	if offset > 0 {
		if offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[offset:]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeItemRepo) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]*entity.Item, int64, error) {
	return r.List(ctx, map[string]interface{}{"authorId": authorID}, limit, offset)
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return errors.NotFound("Item not found", nil)
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.existsErr[id]; ok {
		return false, err
	}
	_, ok := r.items[id]
	return ok, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User not found", nil)
	}
	copied := *user
	copied.Favorites = append([]string{}, user.Favorites...)
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SetPushToken(ctx context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		user = &entity.User{ID: userID, Favorites: []string{}}
		r.users[userID] = user
	}
	user.ExpoPushToken = token
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    map[string]*entity.Chat{},
		messages: map[string][]*entity.Message{},
	}
}

func (r *fakeChatRepo) CreateIfAbsent(ctx context.Context, chat *entity.Chat) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; ok {
		return false, nil
	}
	chat.UpdatedAt = time.Now()
	copied := *chat
	copied.Participants = append([]string{}, chat.Participants...)
	r.chats[chat.ID] = &copied
	return true, nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat room not found", nil)
	}
	copied := *chat
	copied.Participants = append([]string{}, chat.Participants...)
	return &copied, nil
}

func (r *fakeChatRepo) ListByParticipant(ctx context.Context, userID string, limit, offset int) ([]*entity.Chat, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Chat
	for _, chat := range r.chats {
		for _, p := range chat.Participants {
			if p == userID {
				copied := *chat
				copied.Participants = append([]string{}, chat.Participants...)
				matched = append(matched, &copied)
				break
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	return matched, int64(len(matched)), nil
}

func (r *fakeChatRepo) RemoveParticipant(ctx context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat room not found", nil)
	}
	remaining := make([]string, 0, len(chat.Participants))
	for _, p := range chat.Participants {
		if p != userID {
			remaining = append(remaining, p)
		}
	}
	chat.Participants = remaining
	chat.UpdatedAt = time.Now()
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, chatID string, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat room not found", nil)
	}
	if message.ID == "" {
		message.ID = "msg-" + time.Now().Format("150405.000000000")
	}
	message.CreatedAt = time.Now()
	copied := *message
	r.messages[chatID] = append(r.messages[chatID], &copied)
	chat.LastMessage = message.Text
	chat.UpdatedAt = time.Now()
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.messages[chatID]
	out := make([]*entity.Message, len(msgs))
	for i, m := range msgs {
		copied := *m
		out[i] = &copied
	}
	total := int64(len(out))
	if offset > 0 {
		if offset >= len(out) {
			return nil, total, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (r *fakeChatRepo) CountUnread(ctx context.Context, chatID, viewerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, m := range r.messages[chatID] {
		if !m.Read && m.SenderID != viewerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeChatRepo) MarkMessagesRead(ctx context.Context, chatID, viewerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	for _, m := range r.messages[chatID] {
		if !m.Read && m.SenderID != viewerID {
			m.Read = true
			updated++
		}
	}
	return updated, nil
}

// fakeFavoriteRepo mirrors the production invariant: the id array and the
// snapshot map are updated together under one lock.
type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites map[string][]string
	snapshots map[string]map[string]*entity.FavoriteItem
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		favorites: map[string][]string{},
		snapshots: map[string]map[string]*entity.FavoriteItem{},
	}
}

func (r *fakeFavoriteRepo) Add(ctx context.Context, userID string, snapshot *entity.FavoriteItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	present := false
	for _, id := range r.favorites[userID] {
		if id == snapshot.ID {
			present = true
			break
		}
	}
	if !present {
		r.favorites[userID] = append(r.favorites[userID], snapshot.ID)
	}
	if r.snapshots[userID] == nil {
		r.snapshots[userID] = map[string]*entity.FavoriteItem{}
	}
	copied := *snapshot
	r.snapshots[userID][snapshot.ID] = &copied
	return nil
}

func (r *fakeFavoriteRepo) Remove(ctx context.Context, userID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remaining := make([]string, 0, len(r.favorites[userID]))
	for _, id := range r.favorites[userID] {
		if id != itemID {
			remaining = append(remaining, id)
		}
	}
	r.favorites[userID] = remaining
	delete(r.snapshots[userID], itemID)
	return nil
}

func (r *fakeFavoriteRepo) List(ctx context.Context, userID string) ([]*entity.FavoriteItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.FavoriteItem{}
	for _, s := range r.snapshots[userID] {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFavoriteRepo) IDs(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.favorites[userID]...), nil
}

// breakMirror drops a snapshot without touching the id array, simulating the
// drift the reconciliation pass repairs.
func (r *fakeFavoriteRepo) breakMirror(userID, itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.snapshots[userID], itemID)
}

// orphanSnapshot inserts a snapshot without an array entry.
func (r *fakeFavoriteRepo) orphanSnapshot(userID string, snapshot *entity.FavoriteItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshots[userID] == nil {
		r.snapshots[userID] = map[string]*entity.FavoriteItem{}
	}
	r.snapshots[userID][snapshot.ID] = snapshot
}

type fakeVerificationRepo struct {
	mu    sync.Mutex
	codes map[string]*entity.EmailVerification
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{codes: map[string]*entity.EmailVerification{}}
}

func (r *fakeVerificationRepo) Put(ctx context.Context, v *entity.EmailVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *v
	r.codes[v.Email] = &copied
	return nil
}

func (r *fakeVerificationRepo) Get(ctx context.Context, email string) (*entity.EmailVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.codes[email]
	if !ok {
		return nil, errors.NotFound("Verification code not found", nil)
	}
	copied := *v
	return &copied, nil
}

func (r *fakeVerificationRepo) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, email)
	return nil
}

type fakeAuthClient struct {
	mu       sync.Mutex
	accounts map[string]string // email -> uid
	emails   map[string]string // uid -> email
	deleted  []string
	nextUID  int
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		accounts: map[string]string{},
		emails:   map[string]string{},
	}
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUID++
	uid := "uid-" + email
	f.accounts[email] = uid
	f.emails[uid] = email
	return uid, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return token, nil
}

func (f *fakeAuthClient) GetUserEmail(ctx context.Context, uid string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.emails[uid]
	if !ok {
		return "", errors.NotFound("User not found", nil)
	}
	return email, nil
}

func (f *fakeAuthClient) EmailExists(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.accounts[email]
	return ok, nil
}

func (f *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	return nil
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakePasswordAuth struct {
	mu        sync.Mutex
	passwords map[string]string // email -> password
}

func newFakePasswordAuth() *fakePasswordAuth {
	return &fakePasswordAuth{passwords: map[string]string{}}
}

func (f *fakePasswordAuth) SignInWithPassword(ctx context.Context, email, password string) (*firebase.SignInResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.passwords[email]
	if !ok || stored != password {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}
	return &firebase.SignInResult{
		UID:          "uid-" + email,
		Email:        email,
		IDToken:      "id-token-" + email,
		RefreshToken: "refresh-token-" + email,
	}, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string // "email:code"
}

func (f *fakeMailer) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, toEmail+":"+code)
	return nil
}

type fakeUploader struct {
	url string
}

func (f *fakeUploader) UploadBase64(ctx context.Context, image string) (string, error) {
	if f.url == "" {
		return "https://i.example.com/uploaded.png", nil
	}
	return f.url, nil
}

type fakePushSender struct {
	mu   sync.Mutex
	sent []string // token
}

func (f *fakePushSender) SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, token)
	return nil
}

func (f *fakePushSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
