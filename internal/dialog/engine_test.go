package dialog

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/fudosan-dx/satei-bot/internal/domain"
	"github.com/fudosan-dx/satei-bot/internal/store"
)

type captureNotifier struct {
	ch chan domain.Answers
}

func (c *captureNotifier) Notify(_ context.Context, a domain.Answers) {
	c.ch <- a
}

func newTestEngine(n Notifier) (*Engine, *store.Memory) {
	st := store.NewMemory()
	return New(st, n, "https://example.com/privacy"), st
}

func textEvent(user, t string) Event {
	return Event{Kind: EventText, UserID: user, ReplyToken: "rt", Text: t}
}

func postbackEvent(user, data string) Event {
	return Event{Kind: EventPostback, UserID: user, ReplyToken: "rt", Postback: data}
}

func mustHandle(t *testing.T, e *Engine, ev Event) []Message {
	t.Helper()
	msgs, err := e.Handle(context.Background(), ev)
	if err != nil {
		t.Fatalf("Handle(%+v) error: %v", ev, err)
	}
	return msgs
}

func drive(t *testing.T, e *Engine, user string, inputs ...string) {
	t.Helper()
	for _, in := range inputs {
		mustHandle(t, e, textEvent(user, in))
	}
}

func getSession(t *testing.T, st *store.Memory, user string) *domain.Session {
	t.Helper()
	s, err := st.Get(context.Background(), user)
	if err != nil {
		t.Fatalf("Get session: %v", err)
	}
	if s == nil {
		t.Fatalf("no session for %s", user)
	}
	return s
}

func seedSession(t *testing.T, st *store.Memory, s *domain.Session) {
	t.Helper()
	if err := st.Set(context.Background(), s); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

func firstText(msgs []Message) string {
	for _, m := range msgs {
		if tm, ok := m.(Text); ok {
			return tm.Body
		}
	}
	return ""
}

func hasCard(msgs []Message) bool {
	for _, m := range msgs {
		if _, ok := m.(Card); ok {
			return true
		}
	}
	return false
}

// Full apartment main-flow inputs, from property type to privacy consent.
var apartmentFlow = []string{
	"マンション", "東京都", "杉並区", "阿佐谷南1-23-4",
	"サンシャインタワー 305", "65.34", "3LDK", "居住中", "続ける",
	"本人所有", "住み替え(決定済み)", "机上査定", "3か月以内",
	"電話", "山田太郎", "09012345678", "なし", "同意する",
}

func TestApartmentFlowReachesConfirm(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U1"

	mustHandle(t, e, postbackEvent(user, PostbackBegin))
	drive(t, e, user, apartmentFlow...)

	s := getSession(t, st, user)
	if s.State != domain.StateWaitConfirm {
		t.Fatalf("state = %s, want WAIT_CONFIRM", s.State)
	}

	a := s.Answers
	if a.Type != domain.TypeApartment {
		t.Errorf("type = %s", a.Type)
	}
	if a.ApartmentName != "サンシャインタワー" || a.RoomNo != "305" {
		t.Errorf("apartment split: name=%q room=%q", a.ApartmentName, a.RoomNo)
	}
	if a.Area.Exclusive != "65.34" || a.Area.Land != "" || a.Area.Building != "" {
		t.Errorf("apartment area keys: %+v", a.Area)
	}
	if a.YearBuilt != "" || a.AgeBuilt != "" {
		t.Errorf("apartment must not carry year built: %q %q", a.YearBuilt, a.AgeBuilt)
	}
	if a.Phone != "09012345678" || a.Email != "" {
		t.Errorf("contact invariant: phone=%q email=%q", a.Phone, a.Email)
	}
	if !a.PrivacyAgree {
		t.Error("privacy agreement not recorded")
	}
}

func TestCombinedAptNameSkipsRoomPrompt(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U2"

	mustHandle(t, e, postbackEvent(user, PostbackBegin))
	drive(t, e, user, "マンション", "Tokyo", "Suginami", "1-2-3")
	msgs := mustHandle(t, e, textEvent(user, "Sunshine Tower 305"))

	s := getSession(t, st, user)
	if s.Answers.ApartmentName != "Sunshine Tower" || s.Answers.RoomNo != "305" {
		t.Errorf("split: name=%q room=%q", s.Answers.ApartmentName, s.Answers.RoomNo)
	}
	if s.State != domain.StateAskArea {
		t.Errorf("state = %s, want ASK_AREA (room prompt skipped)", s.State)
	}
	if got := firstText(msgs); got != promptAreaExclusiveText {
		t.Errorf("reply = %q, want exclusive-area prompt", got)
	}
}

func TestAptNameWithoutRoomAsksSeparately(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U3"

	mustHandle(t, e, postbackEvent(user, PostbackBegin))
	drive(t, e, user, "マンション", "東京都", "杉並区", "阿佐谷南1-23-4", "メゾン青葉")

	s := getSession(t, st, user)
	if s.State != domain.StateAskAptRoomNo {
		t.Fatalf("state = %s, want ASK_APT_ROOMNO", s.State)
	}

	// Invalid room number re-prompts without advancing.
	msgs := mustHandle(t, e, textEvent(user, "三〇五"))
	if got := firstText(msgs); got != retryRoomNoText {
		t.Errorf("retry reply = %q", got)
	}
	if getSession(t, st, user).State != domain.StateAskAptRoomNo {
		t.Error("state advanced on invalid room number")
	}

	drive(t, e, user, "305号室")
	s = getSession(t, st, user)
	if s.Answers.RoomNo != "305号室" || s.State != domain.StateAskArea {
		t.Errorf("room=%q state=%s", s.Answers.RoomNo, s.State)
	}
}

func TestAreaValidationReprompts(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U4"

	seedSession(t, st, &domain.Session{
		UserID:  user,
		State:   domain.StateAskArea,
		Answers: domain.Answers{Type: domain.TypeApartment},
	})

	msgs := mustHandle(t, e, textEvent(user, "abc"))
	if got := firstText(msgs); got != retryAreaText {
		t.Errorf("retry reply = %q", got)
	}
	s := getSession(t, st, user)
	if s.State != domain.StateAskArea || s.Answers.Area != (domain.Area{}) {
		t.Errorf("invalid input mutated session: state=%s area=%+v", s.State, s.Answers.Area)
	}

	drive(t, e, user, "65.34")
	s = getSession(t, st, user)
	if s.Answers.Area.Exclusive != "65.34" || s.State != domain.StateAskLayout {
		t.Errorf("area=%+v state=%s", s.Answers.Area, s.State)
	}
}

func TestHouseFlowAreaAndYear(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U5"

	mustHandle(t, e, postbackEvent(user, PostbackBegin))
	drive(t, e, user, "戸建て", "神奈川県", "横浜市鶴見区", "市場大和町1-1")

	s := getSession(t, st, user)
	if s.State != domain.StateAskAreaLand {
		t.Fatalf("state = %s, want ASK_AREA_LAND", s.State)
	}

	drive(t, e, user, "80.12", "95.60", "4LDK以上")
	s = getSession(t, st, user)
	if s.State != domain.StateAskYearBuilt {
		t.Fatalf("state = %s, want ASK_YEAR_BUILT", s.State)
	}
	if s.Answers.Area.Land != "80.12" || s.Answers.Area.Building != "95.60" || s.Answers.Area.Exclusive != "" {
		t.Errorf("house area keys: %+v", s.Answers.Area)
	}

	drive(t, e, user, "築22年")
	s = getSession(t, st, user)
	if s.Answers.AgeBuilt != "築22年" || s.Answers.YearBuilt != "" {
		t.Errorf("age notation: year=%q age=%q", s.Answers.YearBuilt, s.Answers.AgeBuilt)
	}
	if s.State != domain.StateAskStatus {
		t.Errorf("state = %s, want ASK_STATUS", s.State)
	}
}

func TestYearBuiltCalendarNotation(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U6"

	seedSession(t, st, &domain.Session{
		UserID:  user,
		State:   domain.StateAskYearBuilt,
		Answers: domain.Answers{Type: domain.TypeHouse, AgeBuilt: "築10年"},
	})

	drive(t, e, user, "2003")
	s := getSession(t, st, user)
	if s.Answers.YearBuilt != "2003" || s.Answers.AgeBuilt != "" {
		t.Errorf("calendar notation: year=%q age=%q", s.Answers.YearBuilt, s.Answers.AgeBuilt)
	}
}

func TestLandFlowAreaKeys(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U7"

	mustHandle(t, e, postbackEvent(user, PostbackBegin))
	drive(t, e, user, "土地", "千葉県", "柏市", "豊四季100", "120.00")

	s := getSession(t, st, user)
	a := s.Answers.Area
	if a.Land != "120.00" || a.Exclusive != "" || a.Building != "" {
		t.Errorf("land area keys: %+v", a)
	}
	if s.State != domain.StateAskLayout {
		t.Errorf("state = %s, want ASK_LAYOUT", s.State)
	}
}

func TestRestartKeywordFromEveryState(t *testing.T) {
	allStates := []domain.State{
		domain.StateInit, domain.StateAskType, domain.StateAskAddressPref,
		domain.StateAskAddressCity, domain.StateAskAddressStreet,
		domain.StateAskAptName, domain.StateAskAptRoomNo, domain.StateAskArea,
		domain.StateAskAreaLand, domain.StateAskAreaBuilding, domain.StateAskLayout,
		domain.StateAskYearBuilt, domain.StateAskStatus, domain.StateAskBreakCustomer,
		domain.StateAskOwner, domain.StateAskReason, domain.StateAskMethod,
		domain.StateAskTiming, domain.StateAskContactMethod, domain.StateAskName,
		domain.StateAskPhone, domain.StateAskEmail, domain.StateAskNotes,
		domain.StateAskPrivacy, domain.StateWaitConfirm, domain.StateEditMenu,
		domain.StateDone,
	}

	for _, state := range allStates {
		t.Run(string(state), func(t *testing.T) {
			e, st := newTestEngine(nil)
			user := "U-" + string(state)
			seedSession(t, st, &domain.Session{
				UserID: user,
				State:  state,
				Answers: domain.Answers{
					Type:    domain.TypeHouse,
					Address: domain.Address{Pref: "東京都"},
					Phone:   "09012345678",
				},
				Editing: true,
			})

			msgs := mustHandle(t, e, textEvent(user, "やり直し"))
			if len(msgs) == 0 {
				t.Fatal("restart produced no messages")
			}

			s := getSession(t, st, user)
			if s.State != domain.StateAskType {
				t.Errorf("state = %s, want ASK_TYPE", s.State)
			}
			if !reflect.DeepEqual(s.Answers, domain.Answers{}) {
				t.Errorf("answers not cleared: %+v", s.Answers)
			}
			if s.Editing {
				t.Error("editing flag survived restart")
			}
		})
	}
}

func TestUnrecognizedInputIsSilent(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U8"

	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateAskType})

	msgs := mustHandle(t, e, textEvent(user, "こんにちは"))
	if len(msgs) != 0 {
		t.Errorf("expected silent no-op, got %v", msgs)
	}
	if getSession(t, st, user).State != domain.StateAskType {
		t.Error("state changed on unrecognized input")
	}
}

func TestAcknowledgementGetsThanks(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U9"

	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateAskType})

	msgs := mustHandle(t, e, textEvent(user, "ありがとう"))
	if got := firstText(msgs); got != thanksText {
		t.Errorf("reply = %q, want thanks", got)
	}
	if getSession(t, st, user).State != domain.StateAskType {
		t.Error("state changed on acknowledgement")
	}
}

func TestFollowGreetsWithoutStartingDialog(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U10"

	msgs := mustHandle(t, e, Event{Kind: EventFollow, UserID: user, ReplyToken: "rt"})
	if len(msgs) != 2 {
		t.Fatalf("follow messages = %d, want 2", len(msgs))
	}
	if getSession(t, st, user).State != domain.StateInit {
		t.Error("follow moved dialog state")
	}
}

func TestBeginPostbackResetsMidFlow(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U11"

	seedSession(t, st, &domain.Session{
		UserID:  user,
		State:   domain.StateAskNotes,
		Answers: domain.Answers{Type: domain.TypeLand, Name: "山田"},
	})

	mustHandle(t, e, postbackEvent(user, PostbackBegin))
	s := getSession(t, st, user)
	if s.State != domain.StateAskType || !reflect.DeepEqual(s.Answers, domain.Answers{}) {
		t.Errorf("begin did not reset: state=%s answers=%+v", s.State, s.Answers)
	}
}

func confirmReadyAnswers() domain.Answers {
	return domain.Answers{
		Type:          domain.TypeApartment,
		Address:       domain.Address{Pref: "東京都", City: "杉並区", Street: "阿佐谷南1-23-4"},
		ApartmentName: "サンシャインタワー",
		RoomNo:        "305",
		Area:          domain.Area{Exclusive: "65.34"},
		Layout:        "3LDK",
		Occupancy:     "居住中",
		OwnerType:     "本人所有",
		SaleReason:    "住み替え(決定済み)",
		Method:        domain.MethodDesk,
		SaleTiming:    "3か月以内",
		ContactMethod: domain.ContactPhone,
		Name:          "山田太郎",
		Phone:         "09012345678",
		PrivacyAgree:  true,
	}
}

func TestSubmitDispatchesAndFinishes(t *testing.T) {
	notifier := &captureNotifier{ch: make(chan domain.Answers, 1)}
	e, st := newTestEngine(notifier)
	user := "U12"

	seedSession(t, st, &domain.Session{
		UserID:  user,
		State:   domain.StateWaitConfirm,
		Answers: confirmReadyAnswers(),
	})

	msgs := mustHandle(t, e, postbackEvent(user, PostbackSubmit))
	if got := firstText(msgs); got != submittedText {
		t.Errorf("reply = %q, want submitted message", got)
	}
	if getSession(t, st, user).State != domain.StateDone {
		t.Error("state not DONE after submit")
	}

	select {
	case got := <-notifier.ch:
		if got.Name != "山田太郎" {
			t.Errorf("dispatched answers = %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("notifier was not invoked")
	}
}

func TestEditAreaRoundTrip(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U13"

	before := confirmReadyAnswers()
	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateWaitConfirm, Answers: before})

	mustHandle(t, e, postbackEvent(user, PostbackEdit))
	if getSession(t, st, user).State != domain.StateEditMenu {
		t.Fatal("edit postback did not open edit menu")
	}

	drive(t, e, user, "面積")
	s := getSession(t, st, user)
	if s.State != domain.StateAskArea || !s.Editing {
		t.Fatalf("area edit: state=%s editing=%v", s.State, s.Editing)
	}

	msgs := mustHandle(t, e, textEvent(user, "70.00"))
	if !hasCard(msgs) {
		t.Error("edit completion did not re-render the confirmation card")
	}

	s = getSession(t, st, user)
	if s.State != domain.StateWaitConfirm || s.Editing {
		t.Errorf("after edit: state=%s editing=%v", s.State, s.Editing)
	}

	want := before
	want.Area = domain.Area{Exclusive: "70.00"}
	if !reflect.DeepEqual(s.Answers, want) {
		t.Errorf("edit mutated unrelated fields:\ngot  %+v\nwant %+v", s.Answers, want)
	}
}

func TestEditAddressWalksThreeSteps(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U14"

	before := confirmReadyAnswers()
	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateWaitConfirm, Answers: before})

	mustHandle(t, e, postbackEvent(user, PostbackEdit))
	drive(t, e, user, "住所", "大阪府", "堺市北区", "百舌鳥1-2")

	s := getSession(t, st, user)
	if s.State != domain.StateWaitConfirm || s.Editing {
		t.Errorf("after address edit: state=%s editing=%v", s.State, s.Editing)
	}

	want := before
	want.Address = domain.Address{Pref: "大阪府", City: "堺市北区", Street: "百舌鳥1-2"}
	if !reflect.DeepEqual(s.Answers, want) {
		t.Errorf("address edit changed other fields:\ngot  %+v\nwant %+v", s.Answers, want)
	}
}

func TestEditContactMethodSwitchClearsDetail(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U15"

	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateWaitConfirm, Answers: confirmReadyAnswers()})

	mustHandle(t, e, postbackEvent(user, PostbackEdit))
	drive(t, e, user, "連絡方法", "メール")

	s := getSession(t, st, user)
	if s.State != domain.StateAskEmail || !s.Editing {
		t.Fatalf("method switch: state=%s editing=%v", s.State, s.Editing)
	}
	if s.Answers.Phone != "" {
		t.Error("stale phone survived contact method switch")
	}

	drive(t, e, user, "example@domain.jp")
	s = getSession(t, st, user)
	if s.State != domain.StateWaitConfirm {
		t.Errorf("state = %s, want WAIT_CONFIRM", s.State)
	}
	if s.Answers.Email != "example@domain.jp" || s.Answers.Phone != "" {
		t.Errorf("contact invariant after edit: phone=%q email=%q", s.Answers.Phone, s.Answers.Email)
	}
}

func TestEditMenuUnknownSelectionReturnsToConfirm(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U16"

	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateEditMenu, Answers: confirmReadyAnswers()})

	msgs := mustHandle(t, e, textEvent(user, "該当なし"))
	if !hasCard(msgs) {
		t.Error("fallback did not re-render the confirmation card")
	}
	if getSession(t, st, user).State != domain.StateWaitConfirm {
		t.Error("fallback did not return to WAIT_CONFIRM")
	}
}

func TestEditMenuFiltersByPropertyType(t *testing.T) {
	land := domain.Answers{Type: domain.TypeLand, ContactMethod: domain.ContactLINE}
	labels := editLabels(land)
	for _, forbidden := range []string{"建物名", "部屋番号", "築年", "連絡先"} {
		for _, l := range labels {
			if l == forbidden {
				t.Errorf("land edit menu offers %q", forbidden)
			}
		}
	}

	house := domain.Answers{Type: domain.TypeHouse, ContactMethod: domain.ContactPhone}
	found := map[string]bool{}
	for _, l := range editLabels(house) {
		found[l] = true
	}
	for _, required := range []string{"築年", "面積", "連絡先"} {
		if !found[required] {
			t.Errorf("house edit menu missing %q", required)
		}
	}
}

func TestLINEOnlyContactSkipsDetail(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U17"

	seedSession(t, st, &domain.Session{
		UserID:  user,
		State:   domain.StateAskContactMethod,
		Answers: domain.Answers{Type: domain.TypeLand},
	})

	drive(t, e, user, "LINEのみ", "山田太郎")
	s := getSession(t, st, user)
	if s.State != domain.StateAskNotes {
		t.Errorf("state = %s, want ASK_NOTES (no contact detail step)", s.State)
	}
	if s.Answers.Phone != "" || s.Answers.Email != "" {
		t.Errorf("contact detail recorded for LINE-only: %q %q", s.Answers.Phone, s.Answers.Email)
	}
}

func TestBreakCheckpointAcceptsOnlyContinue(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U18"

	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateAskBreakCustomer})

	if msgs := mustHandle(t, e, textEvent(user, "やめる")); len(msgs) != 0 {
		t.Errorf("checkpoint replied to unexpected input: %v", msgs)
	}

	drive(t, e, user, "続ける")
	if getSession(t, st, user).State != domain.StateAskOwner {
		t.Error("続ける did not advance to ASK_OWNER")
	}
}

func TestPrivacyConsentShowsConfirmCard(t *testing.T) {
	e, st := newTestEngine(nil)
	user := "U19"

	a := confirmReadyAnswers()
	a.PrivacyAgree = false
	seedSession(t, st, &domain.Session{UserID: user, State: domain.StateAskNotes, Answers: a})

	msgs := mustHandle(t, e, textEvent(user, "なし"))
	if got := firstText(msgs); got == "" || !strings.Contains(got, "https://example.com/privacy") {
		t.Errorf("privacy prompt missing URL: %q", got)
	}

	msgs = mustHandle(t, e, textEvent(user, "同意する"))
	if !hasCard(msgs) {
		t.Error("consent did not render the confirmation card")
	}
	s := getSession(t, st, user)
	if s.State != domain.StateWaitConfirm || !s.Answers.PrivacyAgree {
		t.Errorf("state=%s agree=%v", s.State, s.Answers.PrivacyAgree)
	}
}

func TestDeterministicTransitions(t *testing.T) {
	// Same state, same answers, same input: two independent engines must
	// land on identical sessions.
	run := func() *domain.Session {
		e, st := newTestEngine(nil)
		user := "U20"
		seedSession(t, st, &domain.Session{
			UserID:  user,
			State:   domain.StateAskLayout,
			Answers: domain.Answers{Type: domain.TypeHouse},
		})
		drive(t, e, user, "2LDK")
		return getSession(t, st, user)
	}

	a, b := run(), run()
	if a.State != b.State || !reflect.DeepEqual(a.Answers, b.Answers) {
		t.Errorf("non-deterministic transition: %+v vs %+v", a, b)
	}
}
