package oracle

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// ONNXScorer runs a binary sentiment model exported to ONNX. The model must
// take a single [batch, seqLen] int64 input of token IDs and emit one
// positive-class probability per sample (a sigmoid output head).
type ONNXScorer struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
}

// NewONNX loads the ONNX model and creates an inference session. The ONNX
// Runtime shared library is resolved next to the model file.
func NewONNX(modelPath string) (*ONNXScorer, error) {
	libPath := filepath.Join(filepath.Dir(modelPath), "libonnxruntime.so")
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("onnx: expected a single token-ID input, model has %d inputs", len(inputs))
	}
	if len(inputs[0].Dimensions) != 2 {
		return nil, fmt.Errorf("onnx: expected 2D [batch, seq] input, got %v", inputs[0].Dimensions)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("onnx: model has no outputs")
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(1)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &ONNXScorer{
		session:    session,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
	}, nil
}

// Score runs a single inference call on one sequence. The ONNX Runtime has
// no native cancellation, so the context is only checked before dispatch.
func (s *ONNXScorer) Score(ctx context.Context, seq []int64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	in, err := ort.NewTensor(ort.NewShape(1, int64(len(seq))), seq)
	if err != nil {
		return 0, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return 0, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := s.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return 0, fmt.Errorf("onnx: inference failed: %w", err)
	}

	p := float64(out.GetData()[0])
	if err := CheckProbability(p); err != nil {
		return 0, fmt.Errorf("onnx: %w", err)
	}
	return p, nil
}

// Close releases the ONNX session resources.
func (s *ONNXScorer) Close() error {
	return s.session.Destroy()
}
