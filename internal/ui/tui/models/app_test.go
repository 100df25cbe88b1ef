package models

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PizzaHomicide/hotaru/internal/catalog"
	"github.com/PizzaHomicide/hotaru/internal/config"
	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/wishlist"
)

type fakeAuth struct {
	user *domain.User
}

func (f *fakeAuth) CurrentUser() *domain.User { return f.user }

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) error {
	f.user = &domain.User{ID: "u1", Email: email}
	return nil
}

func (f *fakeAuth) SignUp(ctx context.Context, email, password, confirmPassword string) error {
	f.user = &domain.User{ID: "u1", Email: email}
	return nil
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	f.user = nil
	return nil
}

type fakeProfileRepo struct {
	profiles []*domain.Profile
}

func (f *fakeProfileRepo) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	return f.profiles, nil
}

func (f *fakeProfileRepo) CreateProfile(ctx context.Context, name string, avatarIndex int) (*domain.Profile, error) {
	p := &domain.Profile{ID: name, Name: name, AvatarIndex: avatarIndex, IsMain: len(f.profiles) == 0}
	f.profiles = append(f.profiles, p)
	return p, nil
}

func (f *fakeProfileRepo) DeleteProfile(ctx context.Context, id string) error {
	for i, p := range f.profiles {
		if p.ID == id {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return nil
}

func appDeps(t *testing.T, signedIn bool) Deps {
	t.Helper()

	svc := catalog.NewService(&fakeCatalogRepo{content: []domain.Content{testMovie("m1", "Inception")}})
	require.NoError(t, svc.Load(context.Background()))

	auth := &fakeAuth{}
	if signedIn {
		auth.user = &domain.User{ID: "u1", Email: "viewer@example.com"}
	}

	return Deps{
		Config:   &config.Config{},
		Auth:     auth,
		Catalog:  svc,
		Wishlist: wishlist.NewStore(newMemKV()),
		Profiles: &fakeProfileRepo{profiles: []*domain.Profile{{ID: "p1", Name: "Main", IsMain: true}}},
		Manager:  player.NewManager(nil, nil),
		KV:       newMemKV(),
	}
}

func TestAppStartsAtAuthWhenSignedOut(t *testing.T) {
	app := NewAppModel(appDeps(t, false))
	assert.Equal(t, ViewAuth, app.view)
}

func TestAppResumedSessionSkipsAuth(t *testing.T) {
	app := NewAppModel(appDeps(t, true))
	assert.Equal(t, ViewProfiles, app.view)
}

func TestAuthCompletedMovesToProfiles(t *testing.T) {
	app := NewAppModel(appDeps(t, false))
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	_, cmd := app.Update(AuthCompletedMsg{User: &domain.User{ID: "u1", Email: "viewer@example.com"}})
	assert.Equal(t, ViewProfiles, app.view)
	require.NotNil(t, cmd, "profiles should start loading")
}

func TestProfileSelectionIsRemembered(t *testing.T) {
	deps := appDeps(t, true)
	app := NewAppModel(deps)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	app.Update(ProfileSelectedMsg{Profile: &domain.Profile{ID: "p1", Name: "Main"}})
	assert.Equal(t, ViewBrowse, app.view)

	stored, ok, err := deps.KV.Get(selectedProfileKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "p1", stored)
}

func TestConfiguredStartTabIsHonoured(t *testing.T) {
	deps := appDeps(t, true)
	deps.Config.UI.StartTab = "music"
	app := NewAppModel(deps)

	app.Update(ProfileSelectedMsg{Profile: &domain.Profile{ID: "p1", Name: "Main"}})
	assert.Equal(t, ViewMusic, app.view)
}

func TestTabChangeCrossesIntoMusicAndBack(t *testing.T) {
	app := NewAppModel(appDeps(t, true))
	app.view = ViewBrowse

	app.Update(TabChangedMsg{Tab: TabMusic})
	assert.Equal(t, ViewMusic, app.view)

	app.Update(TabChangedMsg{Tab: TabMyList})
	assert.Equal(t, ViewBrowse, app.view)
	assert.Equal(t, TabMyList, app.browse.tab)
}

func TestHelpModalToggles(t *testing.T) {
	app := NewAppModel(appDeps(t, true))
	app.view = ViewBrowse
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, ModalHelp, app.modal)

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.Equal(t, ModalNone, app.modal)
}

func TestEscClosesModalBeforeAnythingElse(t *testing.T) {
	app := NewAppModel(appDeps(t, true))
	app.view = ViewBrowse
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	app.Update(OpenDetailsMsg{Content: testMovie("m1", "Inception")})
	require.Equal(t, ModalDetails, app.modal)

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModalNone, app.modal)
	assert.Equal(t, ViewBrowse, app.view)
}

func TestPlaybackClosedReturnsToPriorView(t *testing.T) {
	app := NewAppModel(appDeps(t, true))
	app.prevView = ViewMusic
	app.view = ViewPlayer

	app.Update(PlaybackClosedMsg{})
	assert.Equal(t, ViewMusic, app.view)
}

func TestTabFromName(t *testing.T) {
	cases := map[string]Tab{
		"home":     TabHome,
		"movies":   TabMovies,
		"series":   TabSeries,
		"wishlist": TabMyList,
		"music":    TabMusic,
	}
	for name, want := range cases {
		tab, ok := TabFromName(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, tab, name)
	}

	_, ok := TabFromName("originals")
	assert.False(t, ok)
}
