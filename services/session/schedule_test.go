package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"lexmap/models"
)

// The fixture clock starts at 2026-03-10 12:00 UTC.
const (
	dateTomorrow  = "2026-03-11"
	dateToday     = "2026-03-10"
	dateYesterday = "2026-03-09"
)

func TestScheduleDateValidation(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	f.manager.Request(ctx, "adv-online", models.ModeSchedule)

	for _, date := range []string{dateYesterday, dateToday, "11-03-2026", ""} {
		_, err := f.manager.SubmitSchedule(ctx, models.ScheduleRequest{
			Date: date, Time: "14:30", Mode: models.AppointmentOnline, DeviceID: "dev-1",
		})
		var valErr *ValidationError
		if !errors.As(err, &valErr) || valErr.Field != "date" {
			t.Fatalf("date %q: want date ValidationError, got %v", date, err)
		}
	}

	// A rejected submission leaves the session requested and starts no timer.
	snap, ok := f.manager.Snapshot()
	if !ok || snap.State != models.SessionRequested {
		t.Fatalf("session must stay requested after rejection, got %+v ok=%v", snap, ok)
	}
	f.clock.Advance(10 * time.Second)
	snap, ok = f.manager.Snapshot()
	if !ok || snap.State != models.SessionRequested {
		t.Fatalf("no confirmation may fire after a rejection, got %+v ok=%v", snap, ok)
	}
}

func TestScheduleFieldValidation(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()
	f.manager.Request(ctx, "adv-online", models.ModeSchedule)

	var valErr *ValidationError
	_, err := f.manager.SubmitSchedule(ctx, models.ScheduleRequest{
		Date: dateTomorrow, Time: "", Mode: models.AppointmentOnline, DeviceID: "dev-1",
	})
	if !errors.As(err, &valErr) || valErr.Field != "time" {
		t.Fatalf("empty time: got %v", err)
	}

	_, err = f.manager.SubmitSchedule(ctx, models.ScheduleRequest{
		Date: dateTomorrow, Time: "14:30", Mode: "hybrid", DeviceID: "dev-1",
	})
	if !errors.As(err, &valErr) || valErr.Field != "mode" {
		t.Fatalf("bad mode: got %v", err)
	}
}

func TestScheduleOfflineRequiresGrantedLocation(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	req := models.ScheduleRequest{
		Date: dateTomorrow, Time: "10:00", Mode: models.AppointmentOffline, DeviceID: "dev-1",
	}

	// Nothing reported for the device.
	f.manager.Request(ctx, "adv-online", models.ModeSchedule)
	_, err := f.manager.SubmitSchedule(ctx, req)
	var valErr *ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "location" {
		t.Fatalf("unreported device: got %v", err)
	}

	// An explicit denial blocks the same way; it never falls back to a
	// default position.
	f.location.Report(ctx, "dev-1", models.UserLocation{Granted: false})
	_, err = f.manager.SubmitSchedule(ctx, req)
	if !errors.As(err, &valErr) || valErr.Field != "location" {
		t.Fatalf("denied device: got %v", err)
	}

	// A granted fix unblocks it.
	f.location.Report(ctx, "dev-1", models.UserLocation{
		Granted: true, Latitude: 28.61, Longitude: 77.21,
	})
	view, err := f.manager.SubmitSchedule(ctx, req)
	if err != nil {
		t.Fatalf("granted device: %v", err)
	}
	if view.State != models.SessionActive {
		t.Fatalf("submission must activate the session, state=%s", view.State)
	}
}

func TestScheduleConfirmationSuccess(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	var events []models.SessionEvent
	f.manager.Subscribe(func(ev models.SessionEvent) { events = append(events, ev) })

	f.manager.Request(ctx, "adv-online", models.ModeSchedule)
	view, err := f.manager.SubmitSchedule(ctx, models.ScheduleRequest{
		Date: dateTomorrow, Time: "14:30", Mode: models.AppointmentOnline, DeviceID: "dev-1",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if view.State != models.SessionActive {
		t.Fatalf("state during confirmation %s", view.State)
	}

	f.clock.Advance(1500 * time.Millisecond)

	if _, ok := f.manager.Snapshot(); ok {
		t.Fatalf("confirmed session must be closed and detached")
	}
	archived, ok := f.archive.last()
	if !ok || archived.Outcome != models.OutcomeSuccess {
		t.Fatalf("want archived success, got %+v ok=%v", archived, ok)
	}
	if archived.Appointment == nil || archived.Appointment.Date != dateTomorrow {
		t.Fatalf("archived appointment missing, got %+v", archived.Appointment)
	}

	if len(events) != 1 || events[0].Type != models.EventAppointmentScheduled {
		t.Fatalf("want one appointment_scheduled event, got %+v", events)
	}
	data := events[0].Data
	if data["date"] != dateTomorrow || data["time"] != "14:30" || data["deviceId"] != "dev-1" {
		t.Fatalf("event data %+v", data)
	}
}

func TestScheduleConfirmationFailure(t *testing.T) {
	f := newTestFixture(func(ctx context.Context, appt models.Appointment) error {
		return fmt.Errorf("slot already taken")
	})
	ctx := context.Background()

	var events []models.SessionEvent
	f.manager.Subscribe(func(ev models.SessionEvent) { events = append(events, ev) })

	f.manager.Request(ctx, "adv-online", models.ModeSchedule)
	f.manager.SubmitSchedule(ctx, models.ScheduleRequest{
		Date: dateTomorrow, Time: "14:30", Mode: models.AppointmentOnline, DeviceID: "dev-1",
	})
	f.clock.Advance(1500 * time.Millisecond)

	archived, ok := f.archive.last()
	if !ok || archived.Outcome != models.OutcomeFailed {
		t.Fatalf("want archived failure, got %+v ok=%v", archived, ok)
	}
	if archived.Appointment != nil {
		t.Fatalf("failed confirmation must not attach an appointment")
	}
	if len(events) != 0 {
		t.Fatalf("failure publishes no appointment event, got %+v", events)
	}
}

func TestScheduleCloseBeforeConfirmation(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	f.manager.Request(ctx, "adv-online", models.ModeSchedule)
	f.manager.SubmitSchedule(ctx, models.ScheduleRequest{
		Date: dateTomorrow, Time: "14:30", Mode: models.AppointmentOnline, DeviceID: "dev-1",
	})

	closed, err := f.manager.Close(ctx)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Outcome != models.OutcomeCancelled {
		t.Fatalf("outcome %s", closed.Outcome)
	}

	// The cancelled confirmation timer must not resurrect anything.
	f.clock.Advance(5 * time.Second)
	if _, ok := f.manager.Snapshot(); ok {
		t.Fatalf("no session may reappear after close")
	}
	archived, _ := f.archive.last()
	if archived.Outcome != models.OutcomeCancelled {
		t.Fatalf("last archive must stay cancelled, got %s", archived.Outcome)
	}
}

func TestScheduleWrongMode(t *testing.T) {
	f := newTestFixture(nil)
	ctx := context.Background()

	f.manager.Request(ctx, "adv-online", models.ModeChat)
	var wrongMode *WrongModeError
	_, err := f.manager.SubmitSchedule(ctx, models.ScheduleRequest{
		Date: dateTomorrow, Time: "14:30", Mode: models.AppointmentOnline,
	})
	if !errors.As(err, &wrongMode) {
		t.Fatalf("want WrongModeError, got %v", err)
	}
}
