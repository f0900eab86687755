package utils

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// LabelDetector is the slice of the Rekognition client RekognitionDetector
// needs.
type LabelDetector interface {
	DetectLabels(ctx context.Context, in *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

type RekognitionDetector struct {
	client        LabelDetector
	maxLabels     int32
	minConfidence float32
}

func NewRekognitionDetector(client LabelDetector) *RekognitionDetector {
	return &RekognitionDetector{client: client, maxLabels: 10, minConfidence: 75}
}

// Labels returns the names of labels found in a data-URI image.
func (r *RekognitionDetector) Labels(ctx context.Context, dataURI string) ([]string, error) {
	_, data, err := ParseDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: data},
		MaxLabels:     aws.Int32(r.maxLabels),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}
	labels := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	return labels, nil
}
