package realm

import "testing"

func TestParseActionType(t *testing.T) {
	for _, valid := range []string{"cook", "craft", "smelt", "gather", "train", "agility"} {
		if _, ok := ParseActionType(valid); !ok {
			t.Fatalf("expected %q to be a valid action type", valid)
		}
	}
	if _, ok := ParseActionType("dance"); ok {
		t.Fatalf("expected unknown action type to be rejected")
	}
	if _, ok := ParseActionType(""); ok {
		t.Fatalf("expected empty action type to be rejected")
	}
}

func TestQueueStatusTerminal(t *testing.T) {
	if QueueActive.Terminal() {
		t.Fatalf("active must not be terminal")
	}
	for _, s := range []QueueStatus{QueueCompleted, QueueCancelled, QueueFailed} {
		if !s.Terminal() {
			t.Fatalf("expected %s to be terminal", s)
		}
	}
}

func TestApplyResult_ItemWinsOverResource(t *testing.T) {
	q := ActionQueue{Status: QueueActive, Total: 5}
	q.ApplyResult(ExecResult{
		Success:   true,
		XPAwarded: 10,
		Item:      &Produced{Name: "Bronze Sword", Quantity: 1},
		Resource:  &Produced{Name: "wood", Quantity: 3},
	})

	if q.Completed != 1 {
		t.Fatalf("completed = %d, want 1", q.Completed)
	}
	if q.ItemName != "Bronze Sword" {
		t.Fatalf("item_name = %q, want Bronze Sword", q.ItemName)
	}
	if q.TotalQuantity != 1 {
		t.Fatalf("total_quantity = %d, want 1 (item, not resource)", q.TotalQuantity)
	}
}

func TestApplyResult_ResourceFallback(t *testing.T) {
	q := ActionQueue{Status: QueueActive}
	q.ApplyResult(ExecResult{Success: true, XPAwarded: 10, Resource: &Produced{Name: "wood", Quantity: 2}})

	if q.ItemName != "wood" || q.TotalQuantity != 2 {
		t.Fatalf("resource fallback not applied: item_name=%q quantity=%d", q.ItemName, q.TotalQuantity)
	}
}

func TestApplyResult_BareIncrementWithoutProduce(t *testing.T) {
	q := ActionQueue{Status: QueueActive}
	q.ApplyResult(ExecResult{Success: true, XPAwarded: 8})

	if q.TotalQuantity != 1 {
		t.Fatalf("total_quantity = %d, want bare +1", q.TotalQuantity)
	}
	if q.ItemName != "" {
		t.Fatalf("item_name should stay empty, got %q", q.ItemName)
	}
}

func TestApplyResult_LevelUpNeedsAllFields(t *testing.T) {
	q := ActionQueue{Status: QueueActive}
	q.ApplyResult(ExecResult{Success: true, LeveledUp: true, NewLevel: 2})
	if q.LastLevelUp != nil {
		t.Fatalf("level-up without skill must be ignored")
	}

	q.ApplyResult(ExecResult{Success: true, LeveledUp: true, NewLevel: 3, Skill: SkillCooking})
	if q.LastLevelUp == nil || q.LastLevelUp.Level != 3 || q.LastLevelUp.Skill != SkillCooking {
		t.Fatalf("expected last_level_up {cooking,3}, got %+v", q.LastLevelUp)
	}
}

func TestTargetReached(t *testing.T) {
	q := ActionQueue{Total: 3, Completed: 3}
	if !q.TargetReached() {
		t.Fatalf("expected target reached at completed == total")
	}

	infinite := ActionQueue{Total: 0, Completed: 100000}
	if infinite.TargetReached() {
		t.Fatalf("infinite queue must never self-terminate on count")
	}
	if !infinite.Infinite() {
		t.Fatalf("total == 0 means infinite")
	}
}

func TestContinuesQueue_AgilityCarveOut(t *testing.T) {
	partial := ExecResult{Success: false, Failed: true}
	if !partial.ContinuesQueue(ActionAgility) {
		t.Fatalf("agility partial failure must continue the queue")
	}
	if partial.ContinuesQueue(ActionGather) {
		t.Fatalf("the failed flag only matters for agility")
	}
	if (ExecResult{Success: false}).ContinuesQueue(ActionAgility) {
		t.Fatalf("agility hard failure must terminate")
	}
}

func TestMarkFailedDefaultReason(t *testing.T) {
	q := ActionQueue{Status: QueueActive}
	q.MarkFailed("")
	if q.Status != QueueFailed || q.StopReason == "" {
		t.Fatalf("expected failed with default stop reason, got %s %q", q.Status, q.StopReason)
	}
}
