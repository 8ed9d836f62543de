package approval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/approval"
)

func TestParse(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "rejected"} {
		s, err := approval.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, string(s))
	}
	_, err := approval.Parse("published")
	assert.ErrorIs(t, err, approval.ErrInvalidStatus)
}

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		current approval.Status
		next    approval.Status
		want    approval.Status
		wantErr error
	}{
		{"approve pending", approval.StatusPending, approval.StatusApproved, approval.StatusApproved, nil},
		{"reject pending", approval.StatusPending, approval.StatusRejected, approval.StatusRejected, nil},
		{"reverse approval", approval.StatusApproved, approval.StatusRejected, approval.StatusRejected, nil},
		{"reverse rejection", approval.StatusRejected, approval.StatusApproved, approval.StatusApproved, nil},
		{"repeat approval is noop", approval.StatusApproved, approval.StatusApproved, approval.StatusApproved, nil},
		{"repeat rejection is noop", approval.StatusRejected, approval.StatusRejected, approval.StatusRejected, nil},
		{"never back to pending from approved", approval.StatusApproved, approval.StatusPending, approval.StatusApproved, approval.ErrInvalidTransition},
		{"never back to pending from rejected", approval.StatusRejected, approval.StatusPending, approval.StatusRejected, approval.ErrInvalidTransition},
		{"unknown target", approval.StatusPending, approval.Status("archived"), approval.StatusPending, approval.ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := approval.Transition(tc.current, tc.next)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReviewed(t *testing.T) {
	assert.False(t, approval.StatusPending.Reviewed())
	assert.True(t, approval.StatusApproved.Reviewed())
	assert.True(t, approval.StatusRejected.Reviewed())
}
