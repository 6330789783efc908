package memory

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ruansmarques/MedFerpa-Store-2/pkg/identity"
)

type account struct {
	principal identity.Principal
	password  string
}

// IdentityProvider is an in-memory stand-in for the external identity
// service, for tests and serve mode without a real provider behind it.
type IdentityProvider struct {
	mu          sync.Mutex
	accounts    map[string]*account
	current     *identity.Principal
	subscribers map[int]func(*identity.Principal)
	nextSub     int
}

func NewIdentityProvider() *IdentityProvider {
	return &IdentityProvider{
		accounts:    make(map[string]*account),
		subscribers: make(map[int]func(*identity.Principal)),
	}
}

func (p *IdentityProvider) SignInWithEmail(email, password string) (*identity.Principal, error) {
	p.mu.Lock()
	acc, ok := p.accounts[strings.ToLower(email)]
	if !ok || acc.password != password {
		p.mu.Unlock()
		return nil, identity.ErrInvalidCredentials
	}
	principal := acc.principal
	p.current = &principal
	p.mu.Unlock()

	p.notify()
	return &principal, nil
}

func (p *IdentityProvider) RegisterWithEmail(email, password string) (*identity.Principal, error) {
	key := strings.ToLower(email)

	p.mu.Lock()
	if _, ok := p.accounts[key]; ok {
		p.mu.Unlock()
		return nil, identity.ErrEmailTaken
	}
	principal := identity.Principal{ID: uuid.NewString(), Email: email}
	p.accounts[key] = &account{principal: principal, password: password}
	p.current = &principal
	p.mu.Unlock()

	p.notify()
	return &principal, nil
}

func (p *IdentityProvider) SignInWithFederated(providerName string) (*identity.Principal, error) {
	principal := identity.Principal{
		ID:          uuid.NewString(),
		DisplayName: providerName + " user",
		Email:       providerName + "-user@example.com",
	}

	p.mu.Lock()
	p.current = &principal
	p.mu.Unlock()

	p.notify()
	return &principal, nil
}

func (p *IdentityProvider) SignOut() error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.notify()
	return nil
}

func (p *IdentityProvider) Subscribe(onChange func(*identity.Principal)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subscribers[id] = onChange
	current := p.current
	p.mu.Unlock()

	onChange(current)

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *IdentityProvider) notify() {
	p.mu.Lock()
	current := p.current
	subscribers := make([]func(*identity.Principal), 0, len(p.subscribers))
	for _, subscriber := range p.subscribers {
		subscribers = append(subscribers, subscriber)
	}
	p.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(current)
	}
}
