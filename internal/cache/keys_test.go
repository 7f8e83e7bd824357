package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "user",
			objectType:  "profile",
			identifier:  "123",
			expectedKey: "skillquest:user:profile:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "user",
			objectType:  "profile",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "skillquest:user:profile:123",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "content",
			objectType:  "lessons",
			identifier:  "m1",
			paramsKey:   []string{"p1", "p2"},
			expectedKey: "skillquest:content:lessons:m1:p1_p2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestDomainKeys(t *testing.T) {
	assert.Equal(t, "skillquest:user:leaderboard:top", LeaderboardKey())
	assert.Equal(t, "skillquest:content:lessons:m42", ModuleLessonsKey("m42"))
	assert.Equal(t, "skillquest:content:modules:active", ActiveModulesKey())
}
