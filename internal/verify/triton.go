package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/Trendyol/go-triton-client/base"
	tritonGrpc "github.com/Trendyol/go-triton-client/client/grpc"

	"treko/internal/config"
)

type tritonVerifier struct {
	client    base.Client
	modelName string
	threshold float64
}

// NewFaceVerifier connects to the Triton inference server hosting the face
// match model.
func NewFaceVerifier(conf config.VerifyConfig) (FaceVerifier, error) {
	client, err := tritonGrpc.NewClient(
		conf.TritonAddr,
		false, // verbose logging
		30,    // connection timeout in seconds
		30,    // network timeout in seconds
		false, // use SSL
		true,  // insecure connection
		nil,   // existing gRPC connection
		nil,   // logger
	)
	if err != nil {
		return nil, fmt.Errorf("create triton client failed: %w", err)
	}

	threshold := conf.MatchThreshold
	if threshold <= 0 {
		threshold = 0.8
	}
	return &tritonVerifier{
		client:    client,
		modelName: conf.ModelName,
		threshold: threshold,
	}, nil
}

// CheckReady verifies the server and the face match model can take traffic.
func (v *tritonVerifier) CheckReady(ctx context.Context) error {
	if isLive, err := v.client.IsServerLive(ctx, nil); err != nil {
		return err
	} else if !isLive {
		return errors.New("triton server is not live")
	}
	if isReady, err := v.client.IsModelReady(ctx, v.modelName, "1", nil); err != nil {
		return err
	} else if !isReady {
		return fmt.Errorf("triton model %s is not ready", v.modelName)
	}
	return nil
}

// Verify runs the face match model over the reference and candidate images.
// The model emits a similarity score in [0,1], or a negative score when no
// usable face was found in the candidate. No face is a verdict, not a
// failure.
func (v *tritonVerifier) Verify(ctx context.Context, reference, candidate []byte) (bool, error) {
	refInput := tritonGrpc.NewInferInput("REFERENCE", "BYTES", []int64{int64(len(reference))}, nil)
	if err := refInput.SetData(reference, true); err != nil {
		return false, fmt.Errorf("failed to set REFERENCE input data: %v", err)
	}
	refInput.SetDatatype("UINT8")

	candInput := tritonGrpc.NewInferInput("CANDIDATE", "BYTES", []int64{int64(len(candidate))}, nil)
	if err := candInput.SetData(candidate, true); err != nil {
		return false, fmt.Errorf("failed to set CANDIDATE input data: %v", err)
	}
	candInput.SetDatatype("UINT8")

	outputs := []base.InferOutput{
		tritonGrpc.NewInferOutput("SIMILARITY", map[string]any{"binary_data": false}),
	}

	response, err := v.client.Infer(
		ctx,
		v.modelName,
		"1",
		[]base.InferInput{refInput, candInput},
		outputs,
		nil,
	)
	if err != nil {
		return false, fmt.Errorf("inference failed: %v", err)
	}

	similarity, err := response.AsFloat32Slice("SIMILARITY")
	if err != nil {
		return false, fmt.Errorf("failed to get similarity score: %v", err)
	}
	if len(similarity) == 0 {
		return false, errors.New("empty similarity output")
	}
	if similarity[0] < 0 {
		return false, ErrNoFace
	}
	return float64(similarity[0]) >= v.threshold, nil
}
