package model

import "testing"

func TestProductStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   ProductStatus
		value string
	}{
		{"draft", ProductStatusDraft, "draft"},
		{"pending", ProductStatusPending, "pending"},
		{"approved", ProductStatusApproved, "approved"},
		{"rejected", ProductStatusRejected, "rejected"},
		{"sold", ProductStatusSold, "sold"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestProductConditionValues(t *testing.T) {
	cases := []struct {
		condition ProductCondition
		value     string
	}{
		{ConditionNew, "new"},
		{ConditionLikeNew, "like_new"},
		{ConditionGood, "good"},
		{ConditionFair, "fair"},
	}

	for _, tc := range cases {
		if string(tc.condition) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.condition)
		}
	}
}

func TestProfileUpdateEmpty(t *testing.T) {
	if !(ProfileUpdate{}).Empty() {
		t.Fatal("zero update should be empty")
	}
	name := "Ada"
	if (ProfileUpdate{FirstName: &name}).Empty() {
		t.Fatal("update with field should not be empty")
	}
}
