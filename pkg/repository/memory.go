package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
)

func key(bot string, chatID int64) string {
	return fmt.Sprintf("%s:%d", bot, chatID)
}

type memoryUpdatesRepository struct {
	mu       sync.Mutex
	bot      string
	sessions map[string]domain.ChatSession
}

func NewMemoryUpdatesRepository(bot string) *memoryUpdatesRepository {
	return &memoryUpdatesRepository{
		bot:      bot,
		sessions: make(map[string]domain.ChatSession),
	}
}

func (m *memoryUpdatesRepository) Advance(_ context.Context, chatID int64, updateID int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(m.bot, chatID)
	session, exists := m.sessions[k]
	if exists && updateID <= session.LastUpdateID {
		return false, nil
	}

	m.sessions[k] = domain.ChatSession{
		Bot:          m.bot,
		ChatID:       chatID,
		LastUpdateID: updateID,
	}
	return true, nil
}

func (m *memoryUpdatesRepository) get(chatID int64) (domain.ChatSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[key(m.bot, chatID)]
	return session, ok
}

type memorySettingsRepository struct {
	mu       sync.RWMutex
	bot      string
	settings map[string]domain.UserSettings
}

func NewMemorySettingsRepository(bot string) *memorySettingsRepository {
	return &memorySettingsRepository{
		bot:      bot,
		settings: make(map[string]domain.UserSettings),
	}
}

func (m *memorySettingsRepository) GetOrCreate(_ context.Context, chatID int64) (*domain.UserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(m.bot, chatID)
	s, exists := m.settings[k]
	if !exists {
		s = domain.DefaultSettings(chatID)
		m.settings[k] = s
	}

	return &s, nil
}

func (m *memorySettingsRepository) Update(_ context.Context, chatID int64, change domain.SettingChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(m.bot, chatID)
	s, exists := m.settings[k]
	if !exists {
		s = domain.DefaultSettings(chatID)
	}

	change.Apply(&s)
	m.settings[k] = s

	return nil
}

// stored returns the record without creating it.
func (m *memorySettingsRepository) stored(chatID int64) (domain.UserSettings, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.settings[key(m.bot, chatID)]
	return s, ok
}
