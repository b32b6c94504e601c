package creds

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/sts/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSTS implements AssumeRoleAPI for testing.
type stubSTS struct {
	out  *sts.AssumeRoleOutput
	err  error
	last *sts.AssumeRoleInput
}

func (s *stubSTS) AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
	s.last = params
	if s.err != nil {
		return nil, s.err
	}
	return s.out, nil
}

func TestAssumeRole_Success(t *testing.T) {
	ctx := context.Background()

	stub := &stubSTS{
		out: &sts.AssumeRoleOutput{
			Credentials: &types.Credentials{
				AccessKeyId:     aws.String("ASIA123"),
				SecretAccessKey: aws.String("secret"),
				SessionToken:    aws.String("token"),
			},
		},
	}

	c, err := NewWithClient(stub).AssumeRole(ctx, "arn:aws:iam::123456789012:role/reader", "nightly-sync")
	require.NoError(t, err)

	assert.Equal(t, "ASIA123", c.AccessKeyID)
	assert.Equal(t, "secret", c.SecretAccessKey)
	assert.Equal(t, "token", c.SessionToken)
	assert.Equal(t, "nightly-sync", aws.ToString(stub.last.RoleSessionName))
}

func TestAssumeRole_DefaultSessionName(t *testing.T) {
	ctx := context.Background()

	stub := &stubSTS{
		out: &sts.AssumeRoleOutput{
			Credentials: &types.Credentials{
				AccessKeyId:     aws.String("ASIA123"),
				SecretAccessKey: aws.String("secret"),
				SessionToken:    aws.String("token"),
			},
		},
	}

	_, err := NewWithClient(stub).AssumeRole(ctx, "arn:aws:iam::123456789012:role/reader", "")
	require.NoError(t, err)

	name := aws.ToString(stub.last.RoleSessionName)
	assert.True(t, strings.HasPrefix(name, "remote-store-"), "generated name %q", name)
	assert.Greater(t, len(name), len("remote-store-"))
}

func TestAssumeRole_Failure(t *testing.T) {
	ctx := context.Background()

	stub := &stubSTS{err: errors.New("AccessDenied: not authorized to assume")}

	_, err := NewWithClient(stub).AssumeRole(ctx, "arn:aws:iam::123456789012:role/locked", "s")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorization)
	assert.Contains(t, err.Error(), "role/locked")
}

func TestAssumeRole_MissingRole(t *testing.T) {
	_, err := NewWithClient(&stubSTS{}).AssumeRole(context.Background(), "", "s")
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestAssumeRole_EmptyCredentials(t *testing.T) {
	stub := &stubSTS{out: &sts.AssumeRoleOutput{}}

	_, err := NewWithClient(stub).AssumeRole(context.Background(), "arn:aws:iam::123456789012:role/reader", "s")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthorization)
}
