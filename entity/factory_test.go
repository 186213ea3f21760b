package entity

import (
	"errors"
	"testing"
)

func TestFactoryFirstRegistrationWins(t *testing.T) {
	f := NewFactory()
	if !f.Register("Enemy", func() Entity { return NewEnemy(10, 1) }) {
		t.Fatalf("first registration should succeed")
	}
	if f.Register("Enemy", func() Entity { return NewPlayer() }) {
		t.Fatalf("second registration of the same tag should fail")
	}

	e, err := f.Create("Enemy")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	enemy, ok := e.(*Enemy)
	if !ok {
		t.Fatalf("expected *Enemy from first constructor, got %T", e)
	}
	if enemy.Range != 10 {
		t.Fatalf("expected range 10, got %v", enemy.Range)
	}
}

func TestFactoryRejectsInvalidRegistrations(t *testing.T) {
	f := NewFactory()
	if f.Register("", func() Entity { return NewPlayer() }) {
		t.Fatalf("empty tag should be rejected")
	}
	if f.Register("Player", nil) {
		t.Fatalf("nil constructor should be rejected")
	}
	if f.Registered("Player") {
		t.Fatalf("Player should not be registered")
	}
}

func TestFactoryZeroValue(t *testing.T) {
	var f Factory
	if f.Registered("Player") || len(f.Types()) != 0 {
		t.Fatalf("zero factory should be empty")
	}
	if _, err := f.Create("Player"); !errors.Is(err, ErrTypeNotRegistered) {
		t.Fatalf("expected ErrTypeNotRegistered, got %v", err)
	}
	if !f.Register("Player", func() Entity { return NewPlayer() }) {
		t.Fatalf("register on zero factory should succeed")
	}
	if e, err := f.Create("Player"); err != nil || e == nil {
		t.Fatalf("create after register: %v", err)
	}
}

func TestFactoryCreateUnknown(t *testing.T) {
	f := NewFactory()
	RegisterDefaults(f)

	e, err := f.Create("Dragon")
	if err == nil {
		t.Fatalf("expected error for unknown tag")
	}
	if !errors.Is(err, ErrTypeNotRegistered) {
		t.Fatalf("expected ErrTypeNotRegistered, got %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil entity, got %T", e)
	}
}

func TestFactoryCreateReturnsFreshInstances(t *testing.T) {
	f := NewFactory()
	RegisterDefaults(f)

	a, err := f.Create("Player")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Create("Player")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatalf("expected distinct instances")
	}
}

func TestFactoryNilConstructorResult(t *testing.T) {
	f := NewFactory()
	f.Register("Ghost", func() Entity { return nil })
	if _, err := f.Create("Ghost"); err == nil {
		t.Fatalf("expected error for nil constructor result")
	}
}

func TestRegisterDefaultsTypes(t *testing.T) {
	f := NewFactory()
	RegisterDefaults(f)
	want := []string{"AnimatedGraphic", "Enemy", "MenuButton", "Player"}
	got := f.Types()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
