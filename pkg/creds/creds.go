// Package creds exchanges a role identifier for short-lived access
// credentials via STS.
//
// The package performs no caching or expiry tracking: every call requests
// fresh credentials. Callers that assume the same role repeatedly should
// memoize the result against the credential expiry themselves.
package creds

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/google/uuid"
)

// ErrAuthorization indicates the role could not be assumed.
var ErrAuthorization = errors.New("authorization failed")

// Credentials holds a temporary credential set returned by an assume-role
// exchange. SessionToken is always present for temporary credentials.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// AssumeRoleAPI is the subset of the STS client used by this package.
type AssumeRoleAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// Exchanger performs assume-role exchanges against an STS endpoint.
type Exchanger struct {
	client AssumeRoleAPI
}

// New creates an Exchanger using the default AWS credential chain.
func New(ctx context.Context) (*Exchanger, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Exchanger{client: sts.NewFromConfig(awsCfg)}, nil
}

// NewWithClient creates an Exchanger over an existing STS client.
// Primarily useful for tests.
func NewWithClient(client AssumeRoleAPI) *Exchanger {
	return &Exchanger{client: client}
}

// AssumeRole exchanges the role ARN for temporary credentials.
//
// An empty sessionName gets a generated "remote-store-<uuid>" name. Failures
// wrap ErrAuthorization so callers can detect them with errors.Is.
func (e *Exchanger) AssumeRole(ctx context.Context, roleARN, sessionName string) (Credentials, error) {
	if roleARN == "" {
		return Credentials{}, fmt.Errorf("%w: role ARN is required", ErrAuthorization)
	}
	if sessionName == "" {
		sessionName = "remote-store-" + uuid.NewString()
	}

	out, err := e.client.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(sessionName),
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: assume role %s: %v", ErrAuthorization, roleARN, err)
	}
	if out.Credentials == nil {
		return Credentials{}, fmt.Errorf("%w: assume role %s: empty credentials in response", ErrAuthorization, roleARN)
	}

	return Credentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
	}, nil
}
