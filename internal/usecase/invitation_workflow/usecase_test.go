package invitation_workflow

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	"github.com/m04kA/SMC-ReceptionService/internal/integrations/mailer"
	invitationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/invitation"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
)

// fakes

type fakeInvitations struct {
	items    map[int64]*domain.Invitation
	officers map[int64]string // officer id -> email
	nextID   int64
}

func (f *fakeInvitations) Create(_ context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	f.nextID++
	inv.ID = f.nextID
	stored := *inv
	f.items[inv.ID] = &stored
	return inv, nil
}

func (f *fakeInvitations) GetByID(_ context.Context, id int64) (*domain.Invitation, error) {
	inv, ok := f.items[id]
	if !ok {
		return nil, invitationRepo.ErrInvitationNotFound
	}
	cp := *inv
	cp.OfficerEmail = f.officers[cp.OfficerID]
	return &cp, nil
}

func (f *fakeInvitations) Update(_ context.Context, inv *domain.Invitation) error {
	if _, ok := f.items[inv.ID]; !ok {
		return invitationRepo.ErrInvitationNotFound
	}
	stored := *inv
	f.items[inv.ID] = &stored
	return nil
}

type fakeRenters []*domain.Renter

func (f fakeRenters) GetByID(_ context.Context, id int64) (*domain.Renter, error) {
	for _, r := range f {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, renterRepo.ErrRenterNotFound
}

func (f fakeRenters) GetFirstByOfficerID(_ context.Context, officerID int64) (*domain.Renter, error) {
	for _, r := range f {
		if r.OfficerID == officerID {
			return r, nil
		}
	}
	return nil, renterRepo.ErrRenterNotFound
}

type fakeSequence struct {
	next  int64
	names []string
}

func (f *fakeSequence) NextVal(_ context.Context, name string) (int64, error) {
	f.next++
	f.names = append(f.names, name)
	return f.next, nil
}

type fakeSettings struct{ settings domain.Settings }

func (f fakeSettings) Current(context.Context) (*domain.Settings, error) {
	s := f.settings
	return &s, nil
}

type sentMail struct {
	template    string
	recordID    int64
	to          string
	data        mailer.InvitationMail
	attachments []mailer.Attachment
}

type fakeNotifier struct{ sent []sentMail }

func (f *fakeNotifier) Send(_ context.Context, name string, recordID int64, to string, data interface{}, attachments ...mailer.Attachment) error {
	f.sent = append(f.sent, sentMail{
		template:    name,
		recordID:    recordID,
		to:          to,
		data:        data.(mailer.InvitationMail),
		attachments: attachments,
	})
	return nil
}

func (f *fakeNotifier) templates() []string {
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.template)
	}
	return out
}

type fakeChanges struct{ entries []map[string]interface{} }

func (f *fakeChanges) Record(_ context.Context, _ domain.Actor, _ string, _ int64, _ domain.ChangeAction, changes map[string]interface{}) error {
	f.entries = append(f.entries, changes)
	return nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fixture

const (
	tenantOfficer int64 = 7
	otherOfficer  int64 = 8
	renterID      int64 = 10
	otherRenterID int64 = 11
)

var (
	tenant = domain.Actor{OfficerID: tenantOfficer, Role: domain.RoleTenant}
	other  = domain.Actor{OfficerID: otherOfficer, Role: domain.RoleTenant}
	admin  = domain.Actor{OfficerID: 1, Role: domain.RoleAdmin}
	now    = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

// 1x1 PNG
const pngImage = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type fixture struct {
	uc          *UseCase
	invitations *fakeInvitations
	sequence    *fakeSequence
	notifier    *fakeNotifier
	changes     *fakeChanges
}

func newFixture(settings domain.Settings) *fixture {
	invitations := &fakeInvitations{
		items: map[int64]*domain.Invitation{},
		officers: map[int64]string{
			tenantOfficer: "bob@acme.example",
			otherOfficer:  "eve@globex.example",
		},
	}
	sequence := &fakeSequence{}
	notifier := &fakeNotifier{}
	changes := &fakeChanges{}

	uc := NewUseCase(
		invitations,
		fakeRenters{
			{ID: renterID, OfficerID: tenantOfficer, CompanyName: "Acme"},
			{ID: otherRenterID, OfficerID: otherOfficer, CompanyName: "Globex"},
		},
		sequence,
		fakeSettings{settings: settings},
		notifier,
		changes,
		passTx{},
		Config{SequenceName: "invitation_seq", SequencePrefix: "INV/"},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}

	return &fixture{uc: uc, invitations: invitations, sequence: sequence, notifier: notifier, changes: changes}
}

func createRequest(at time.Time) *CreateRequest {
	return &CreateRequest{
		Subject:      "Quarterly review",
		Guest:        GuestInput{Name: "Jane Guest", Email: "jane@example.com"},
		InvitationAt: at,
	}
}

func statePtr(s domain.InvitationState) *domain.InvitationState { return &s }

func TestCreate_DraftGetsSequenceAndNoMail(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	first, err := f.uc.Create(ctx, tenant, createRequest(now.Add(24*time.Hour)))
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, tenant, createRequest(now.Add(48*time.Hour)))
	require.NoError(t, err)

	assert.Equal(t, "INV/00001", first.Sequence)
	assert.Equal(t, "INV/00002", second.Sequence)
	assert.Equal(t, []string{"invitation_seq", "invitation_seq"}, f.sequence.names)

	assert.Equal(t, string(domain.InvitationDraft), first.State)
	assert.Equal(t, renterID, first.RenterID)
	assert.Equal(t, "Acme", first.RenterName)
	assert.Equal(t, "INV/00001 - Jane Guest (Acme)", first.Name)
	assert.Empty(t, f.notifier.sent)
	assert.Len(t, f.changes.entries, 2)
}

func TestCreate_ScheduledSendsInvitationWithImage(t *testing.T) {
	f := newFixture(domain.Settings{LocationURL: "https://maps.example.com/b", BuildingImage: pngImage})

	req := createRequest(now.Add(24 * time.Hour))
	req.State = statePtr(domain.InvitationScheduled)

	resp, err := f.uc.Create(context.Background(), tenant, req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationScheduled), resp.State)

	require.Len(t, f.notifier.sent, 1)
	mail := f.notifier.sent[0]
	assert.Equal(t, mailer.TemplateNewInvitation, mail.template)
	assert.Equal(t, "jane@example.com", mail.to)
	assert.Equal(t, resp.ID, mail.recordID)
	assert.Equal(t, "https://maps.example.com/b", mail.data.LocationURL)
	assert.Equal(t, "Acme", mail.data.RenterName)

	require.Len(t, mail.attachments, 1)
	assert.Equal(t, "building.png", mail.attachments[0].Filename)
	assert.Equal(t, "image/png", mail.attachments[0].ContentType)
}

func TestCreate_ScheduledInPastRejected(t *testing.T) {
	f := newFixture(domain.Settings{})

	req := createRequest(now.Add(-time.Hour))
	req.State = statePtr(domain.InvitationScheduled)

	_, err := f.uc.Create(context.Background(), tenant, req)
	assert.ErrorIs(t, err, ErrNotInFuture)
	assert.Empty(t, f.invitations.items)
	assert.Empty(t, f.sequence.names)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateRequest)
		wantErr error
	}{
		{"bad email", func(r *CreateRequest) { r.Guest.Email = "jane@" }, ErrInvalidEmail},
		{"empty email", func(r *CreateRequest) { r.Guest.Email = "" }, ErrInvalidEmail},
		{"empty subject", func(r *CreateRequest) { r.Subject = "  " }, ErrInvalidInput},
		{"empty guest", func(r *CreateRequest) { r.Guest.Name = "" }, ErrInvalidInput},
		{"no datetime", func(r *CreateRequest) { r.InvitationAt = time.Time{} }, ErrInvalidInput},
		{"attended on create", func(r *CreateRequest) { r.State = statePtr(domain.InvitationAttended) }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(domain.Settings{})
			req := createRequest(now.Add(time.Hour))
			tt.mutate(req)

			_, err := f.uc.Create(context.Background(), tenant, req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.invitations.items)
		})
	}
}

func TestCreate_RenterResolution(t *testing.T) {
	t.Run("officer without renter", func(t *testing.T) {
		f := newFixture(domain.Settings{})
		loner := domain.Actor{OfficerID: 99, Role: domain.RoleTenant}

		_, err := f.uc.Create(context.Background(), loner, createRequest(now.Add(time.Hour)))
		assert.ErrorIs(t, err, ErrRenterRequired)
	})

	t.Run("tenant cannot create for another officer", func(t *testing.T) {
		f := newFixture(domain.Settings{})
		req := createRequest(now.Add(time.Hour))
		id := otherOfficer
		req.OfficerID = &id

		_, err := f.uc.Create(context.Background(), tenant, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("tenant cannot pick foreign renter", func(t *testing.T) {
		f := newFixture(domain.Settings{})
		req := createRequest(now.Add(time.Hour))
		id := otherRenterID
		req.RenterID = &id

		_, err := f.uc.Create(context.Background(), tenant, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin picks renter explicitly", func(t *testing.T) {
		f := newFixture(domain.Settings{})
		req := createRequest(now.Add(time.Hour))
		officer, renter := otherOfficer, otherRenterID
		req.OfficerID = &officer
		req.RenterID = &renter

		resp, err := f.uc.Create(context.Background(), admin, req)
		require.NoError(t, err)
		assert.Equal(t, otherRenterID, resp.RenterID)
		assert.Equal(t, otherOfficer, resp.OfficerID)
	})

	t.Run("admin unknown renter", func(t *testing.T) {
		f := newFixture(domain.Settings{})
		req := createRequest(now.Add(time.Hour))
		renter := int64(404)
		req.RenterID = &renter

		_, err := f.uc.Create(context.Background(), admin, req)
		assert.ErrorIs(t, err, ErrRenterNotFound)
	})
}

func TestConfirm_PastDraftRejected(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	draft, err := f.uc.Create(ctx, tenant, createRequest(now.Add(-2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationDraft), draft.State)

	_, err = f.uc.Confirm(ctx, tenant, draft.ID)
	assert.ErrorIs(t, err, ErrNotInFuture)

	stored := f.invitations.items[draft.ID]
	assert.Equal(t, domain.InvitationDraft, stored.State)
	assert.Empty(t, f.notifier.sent)
}

func TestConfirm_SendsInvitation(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	draft, err := f.uc.Create(ctx, tenant, createRequest(now.Add(3*time.Hour)))
	require.NoError(t, err)

	confirmed, err := f.uc.Confirm(ctx, tenant, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationScheduled), confirmed.State)
	assert.Equal(t, draft.Sequence, confirmed.Sequence)

	assert.Equal(t, []string{mailer.TemplateNewInvitation}, f.notifier.templates())
	assert.Empty(t, f.notifier.sent[0].attachments)

	_, err = f.uc.Confirm(ctx, tenant, draft.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMarkAttended_NotifiesOfficer(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	req := createRequest(now.Add(time.Hour))
	req.State = statePtr(domain.InvitationScheduled)
	inv, err := f.uc.Create(ctx, tenant, req)
	require.NoError(t, err)

	_, err = f.uc.MarkAttended(ctx, tenant, inv.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	attended, err := f.uc.MarkAttended(ctx, admin, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationAttended), attended.State)

	require.Equal(t, []string{mailer.TemplateNewInvitation, mailer.TemplateAttendance}, f.notifier.templates())
	assert.Equal(t, "bob@acme.example", f.notifier.sent[1].to)
}

func TestMarkAttended_PastScheduledAllowed(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	f.invitations.items[5] = &domain.Invitation{
		ID:           5,
		Sequence:     "INV/00005",
		OfficerID:    tenantOfficer,
		RenterID:     renterID,
		Subject:      "Visit",
		Guest:        domain.Guest{Name: "Jane", Email: "jane@example.com"},
		InvitationAt: now.Add(-time.Hour),
		State:        domain.InvitationScheduled,
	}

	resp, err := f.uc.MarkAttended(ctx, admin, 5)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationAttended), resp.State)
}

func TestMarkCancelled(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	inv, err := f.uc.Create(ctx, tenant, createRequest(now.Add(time.Hour)))
	require.NoError(t, err)

	_, err = f.uc.MarkCancelled(ctx, other, inv.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	cancelled, err := f.uc.MarkCancelled(ctx, tenant, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationCancelled), cancelled.State)
	assert.Empty(t, f.notifier.sent)

	_, err = f.uc.Confirm(ctx, tenant, inv.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.uc.MarkCancelled(ctx, tenant, inv.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	subject := "Changed"
	edited, err := f.uc.Update(ctx, tenant, inv.ID, &UpdateRequest{Subject: &subject})
	require.NoError(t, err)
	assert.Equal(t, "Changed", edited.Subject)
	assert.Equal(t, string(domain.InvitationCancelled), edited.State)
	assert.Equal(t, inv.Sequence, edited.Sequence)
}

func TestMarkAttended_LateGuestAfterOverdueSweep(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	f.invitations.items[6] = &domain.Invitation{
		ID:           6,
		Sequence:     "INV/00006",
		OfficerID:    tenantOfficer,
		RenterID:     renterID,
		Subject:      "Audit",
		Guest:        domain.Guest{Name: "Jane", Email: "jane@example.com"},
		InvitationAt: now.Add(-2 * time.Hour),
		State:        domain.InvitationOverdue,
	}

	resp, err := f.uc.MarkAttended(ctx, admin, 6)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationAttended), resp.State)

	require.Equal(t, []string{mailer.TemplateAttendance}, f.notifier.templates())
	assert.Equal(t, "bob@acme.example", f.notifier.sent[0].to)
}

func TestMarkCancelled_AfterAttended(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	f.invitations.items[8] = &domain.Invitation{
		ID:           8,
		Sequence:     "INV/00008",
		OfficerID:    tenantOfficer,
		RenterID:     renterID,
		Subject:      "Audit",
		Guest:        domain.Guest{Name: "Jane", Email: "jane@example.com"},
		InvitationAt: now.Add(-2 * time.Hour),
		State:        domain.InvitationAttended,
	}

	resp, err := f.uc.MarkCancelled(ctx, tenant, 8)
	require.NoError(t, err)
	assert.Equal(t, string(domain.InvitationCancelled), resp.State)
	assert.Empty(t, f.notifier.sent)
}

func TestUpdate_RescheduleNotifiesGuest(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	req := createRequest(now.Add(time.Hour))
	req.State = statePtr(domain.InvitationScheduled)
	inv, err := f.uc.Create(ctx, tenant, req)
	require.NoError(t, err)

	later := now.Add(5 * time.Hour)
	updated, err := f.uc.Update(ctx, tenant, inv.ID, &UpdateRequest{InvitationAt: &later})
	require.NoError(t, err)
	assert.Equal(t, later, updated.InvitationAt)
	assert.Equal(t, inv.Sequence, updated.Sequence)

	assert.Equal(t, []string{mailer.TemplateNewInvitation, mailer.TemplateDatetimeChange}, f.notifier.templates())
	assert.Equal(t, map[string]interface{}{"invitation_at": later}, f.changes.entries[len(f.changes.entries)-1])

	subject := "New subject"
	_, err = f.uc.Update(ctx, tenant, inv.ID, &UpdateRequest{Subject: &subject})
	require.NoError(t, err)
	assert.Len(t, f.notifier.sent, 2)
}

func TestUpdate_ScheduledCannotMoveToPast(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	req := createRequest(now.Add(time.Hour))
	req.State = statePtr(domain.InvitationScheduled)
	inv, err := f.uc.Create(ctx, tenant, req)
	require.NoError(t, err)

	past := now.Add(-time.Minute)
	_, err = f.uc.Update(ctx, tenant, inv.ID, &UpdateRequest{InvitationAt: &past})
	assert.ErrorIs(t, err, ErrNotInFuture)
}

func TestUpdate_InvalidEmailAndMissing(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	inv, err := f.uc.Create(ctx, tenant, createRequest(now.Add(time.Hour)))
	require.NoError(t, err)

	bad := "not-an-email"
	_, err = f.uc.Update(ctx, tenant, inv.ID, &UpdateRequest{GuestEmail: &bad})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, "jane@example.com", f.invitations.items[inv.ID].Guest.Email)

	_, err = f.uc.Update(ctx, tenant, 999, &UpdateRequest{GuestEmail: &bad})
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	_, err = f.uc.Update(ctx, tenant, inv.ID, &UpdateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ReassignOfficerMovesRenter(t *testing.T) {
	f := newFixture(domain.Settings{})
	ctx := context.Background()

	inv, err := f.uc.Create(ctx, tenant, createRequest(now.Add(time.Hour)))
	require.NoError(t, err)

	officer := otherOfficer
	updated, err := f.uc.Update(ctx, admin, inv.ID, &UpdateRequest{OfficerID: &officer})
	require.NoError(t, err)
	assert.Equal(t, otherRenterID, updated.RenterID)
	assert.Equal(t, "Globex", updated.RenterName)
}

func TestBuildingImage(t *testing.T) {
	_, ok := buildingImage(nil)
	assert.False(t, ok)

	_, ok = buildingImage(&domain.Settings{BuildingImage: "%%%"})
	assert.False(t, ok)

	att, ok := buildingImage(&domain.Settings{BuildingImage: base64.StdEncoding.EncodeToString([]byte("plain text"))})
	require.True(t, ok)
	assert.Equal(t, "building", att.Filename)
	assert.Equal(t, "text/plain; charset=utf-8", att.ContentType)
}
