// Package wake starts a stopped EC2 instance hosting the backend server.
package wake

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/rs/zerolog"
)

var ErrInstanceNotFound = errors.New("wake: instance not found")

// InstanceAPI is the subset of the EC2 client used by Waker.
type InstanceAPI interface {
	DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StartInstances(ctx context.Context, in *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
}

// Status is a snapshot of the instance.
type Status struct {
	State    types.InstanceStateName
	PublicIP string
}

// Running reports whether the backend can accept players.
func (s Status) Running() bool {
	return s.State == types.InstanceStateNameRunning
}

type Waker struct {
	api        InstanceAPI
	instanceID string
	log        zerolog.Logger

	mu       sync.Mutex
	starting bool
}

func NewWaker(api InstanceAPI, instanceID string, log zerolog.Logger) *Waker {
	return &Waker{
		api:        api,
		instanceID: instanceID,
		log:        log.With().Str("instance", instanceID).Logger(),
	}
}

// NewEC2 builds a Waker using the default AWS credential chain.
func NewEC2(ctx context.Context, region, instanceID string, log zerolog.Logger) (*Waker, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("wake: load aws config: %w", err)
	}
	return NewWaker(ec2.NewFromConfig(cfg), instanceID, log), nil
}

func (w *Waker) InstanceID() string {
	return w.instanceID
}

func (w *Waker) Status(ctx context.Context) (Status, error) {
	out, err := w.api.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{w.instanceID},
	})
	if err != nil {
		return Status{}, fmt.Errorf("wake: describe %s: %w", w.instanceID, err)
	}
	for _, r := range out.Reservations {
		for _, inst := range r.Instances {
			if aws.ToString(inst.InstanceId) != w.instanceID || inst.State == nil {
				continue
			}
			return Status{
				State:    inst.State.Name,
				PublicIP: aws.ToString(inst.PublicIpAddress),
			}, nil
		}
	}
	return Status{}, fmt.Errorf("%w: %s", ErrInstanceNotFound, w.instanceID)
}

// Wake starts the instance if it is stopped and returns its state afterwards.
// Concurrent calls issue at most one start request.
func (w *Waker) Wake(ctx context.Context) (Status, error) {
	st, err := w.Status(ctx)
	if err != nil {
		return Status{}, err
	}
	if st.State != types.InstanceStateNameStopped {
		return st, nil
	}

	w.mu.Lock()
	if w.starting {
		w.mu.Unlock()
		return Status{State: types.InstanceStateNamePending}, nil
	}
	w.starting = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.starting = false
		w.mu.Unlock()
	}()

	out, err := w.api.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{w.instanceID},
	})
	if err != nil {
		return st, fmt.Errorf("wake: start %s: %w", w.instanceID, err)
	}
	for _, change := range out.StartingInstances {
		if aws.ToString(change.InstanceId) == w.instanceID && change.CurrentState != nil {
			st.State = change.CurrentState.Name
		}
	}
	w.log.Info().Str("state", string(st.State)).Msg("instance start requested")
	return st, nil
}
