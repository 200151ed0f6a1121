package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene 记录调用情况的场景
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// saveableScene 实现 Saveable 的场景
type saveableScene struct {
	MockScene
	saved  bool
	result bool
}

func (s *saveableScene) SaveOnExit() bool {
	s.saved = true
	return s.result
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no active scene initially")
	}
	// 没有场景时 Update/Draw 不应 panic
	sm.Update(0.016)
	sm.Draw(nil)
}

func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.Update(0.016)
	sm.Draw(nil)

	if !scene1.updateCalled || !scene1.drawCalled {
		t.Error("scene1 should be updated and drawn")
	}
	if scene1.deltaTime != 0.016 {
		t.Errorf("deltaTime: got %v, want 0.016", scene1.deltaTime)
	}

	sm.SwitchTo(scene2)
	sm.Update(0.016)
	if !scene2.updateCalled {
		t.Error("scene2 should be updated after switching")
	}
}

func TestSceneManagerLoadPreset(t *testing.T) {
	errBoom := errors.New("boom")
	first := &MockScene{}

	tests := []struct {
		name      string
		factory   SceneFactory
		wantErr   bool
		wantScene Scene
	}{
		{"未设置工厂", nil, true, first},
		{"创建失败保留当前场景", func(string) (Scene, error) { return nil, errBoom }, true, first},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSceneManager()
			sm.SwitchTo(first)
			sm.SetSceneFactory(tt.factory)

			err := sm.LoadPreset("popup")
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadPreset() error = %v, wantErr %v", err, tt.wantErr)
			}
			if sm.GetCurrentScene() != tt.wantScene {
				t.Error("current scene changed unexpectedly")
			}
		})
	}

	t.Run("创建成功切换场景", func(t *testing.T) {
		sm := NewSceneManager()
		var got string
		created := &MockScene{}
		sm.SetSceneFactory(func(preset string) (Scene, error) {
			got = preset
			return created, nil
		})

		if err := sm.LoadPreset("pulse"); err != nil {
			t.Fatalf("LoadPreset() error: %v", err)
		}
		if got != "pulse" || sm.GetCurrentScene() != created {
			t.Errorf("factory got %q, current=%v", got, sm.GetCurrentScene())
		}
	})
}

func TestSceneManagerSaveOnExit(t *testing.T) {
	sm := NewSceneManager()
	if !sm.SaveOnExit() {
		t.Error("SaveOnExit() with no scene should report success")
	}

	sm.SwitchTo(&MockScene{})
	if !sm.SaveOnExit() {
		t.Error("SaveOnExit() with non-saveable scene should report success")
	}

	scene := &saveableScene{result: false}
	sm.SwitchTo(scene)
	if sm.SaveOnExit() {
		t.Error("SaveOnExit() should return the scene's result")
	}
	if !scene.saved {
		t.Error("saveable scene was not asked to save")
	}
}
