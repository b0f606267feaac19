package aws

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	cwlTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdaTypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/rs/zerolog/log"

	"github.com/younsl/thaw/internal/models"
	"github.com/younsl/thaw/pkg/parser"
)

// reportFilterPattern narrows the server-side search to likely report lines.
// The parser remains the authoritative check and may reject lines the filter
// passed.
const reportFilterPattern = "REPORT RequestId"

// DefaultMaxResults caps a fetch when the caller does not set a limit.
const DefaultMaxResults = 10000

// LogsClient fetches Lambda execution reports from CloudWatch Logs.
type LogsClient struct {
	logs   *cloudwatchlogs.Client
	lambda *lambda.Client
	region string
}

// NewLogsClient creates a LogsClient. An empty region defers to the SDK's
// default resolution chain.
func NewLogsClient(region string) (*LogsClient, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	return &LogsClient{
		logs:   cloudwatchlogs.NewFromConfig(cfg),
		lambda: lambda.NewFromConfig(cfg),
		region: cfg.Region,
	}, nil
}

// Region returns the region the client resolved at construction time.
func (c *LogsClient) Region() string {
	return c.region
}

// ResolveLogGroup returns the CloudWatch log group for a Lambda function.
// It asks the Lambda control plane first so custom log groups (LoggingConfig)
// and ARN input are handled; when that lookup fails for any reason other than
// a missing function, it falls back to the /aws/lambda/<name> convention so a
// missing lambda:GetFunctionConfiguration permission does not block log
// access.
func (c *LogsClient) ResolveLogGroup(ctx context.Context, functionName string) (string, error) {
	out, err := c.lambda.GetFunctionConfiguration(ctx, &lambda.GetFunctionConfigurationInput{
		FunctionName: aws.String(functionName),
	})
	if err != nil {
		var notFound *lambdaTypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("lambda function %q not found, check the function name and region: %w", functionName, err)
		}

		log.Debug().Err(err).Str("function", functionName).
			Msg("GetFunctionConfiguration failed, falling back to default log group name")

		name := functionName
		if strings.HasPrefix(name, "arn:") {
			parts := strings.Split(name, ":")
			name = parts[len(parts)-1]
		}
		return "/aws/lambda/" + name, nil
	}

	if out.LoggingConfig != nil && aws.ToString(out.LoggingConfig.LogGroup) != "" {
		return aws.ToString(out.LoggingConfig.LogGroup), nil
	}

	name := functionName
	if out.FunctionName != nil {
		name = aws.ToString(out.FunctionName)
	}
	return "/aws/lambda/" + name, nil
}

// FetchReports pulls REPORT lines for a function between startTime and
// endTime and parses them into invocation records sorted by timestamp.
// progress, when non-nil, receives the running raw-event count after each
// page. At most maxResults events are fetched.
func (c *LogsClient) FetchReports(ctx context.Context, functionName string, startTime, endTime time.Time, maxResults int, progress func(fetched int)) ([]models.InvocationReport, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	logGroup, err := c.ResolveLogGroup(ctx, functionName)
	if err != nil {
		return nil, err
	}

	var events []parser.LogEvent
	var nextToken *string
	requestCount := 0

	for {
		input := &cloudwatchlogs.FilterLogEventsInput{
			LogGroupName:  aws.String(logGroup),
			StartTime:     aws.Int64(startTime.UTC().UnixMilli()),
			EndTime:       aws.Int64(endTime.UTC().UnixMilli()),
			FilterPattern: aws.String(reportFilterPattern),
			NextToken:     nextToken,
		}

		resp, err := c.logs.FilterLogEvents(ctx, input)
		if err != nil {
			var notFound *cwlTypes.ResourceNotFoundException
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("log group %q not found, ensure function %q exists and has been invoked: %w",
					logGroup, functionName, err)
			}
			return nil, fmt.Errorf("FilterLogEvents failed for %s: %w", logGroup, err)
		}
		requestCount++

		for _, e := range resp.Events {
			if e.Message == nil || e.Timestamp == nil {
				continue
			}
			events = append(events, parser.LogEvent{Message: *e.Message, Timestamp: *e.Timestamp})
		}

		log.Debug().
			Str("logGroup", logGroup).
			Int("page", requestCount).
			Int("events", len(events)).
			Msg("fetched log events page")

		if progress != nil {
			progress(len(events))
		}

		if len(events) >= maxResults {
			events = events[:maxResults]
			break
		}

		nextToken = resp.NextToken
		if nextToken == nil {
			break
		}

		// CloudWatch Logs throttles FilterLogEvents around 10 requests
		// per second.
		if requestCount%10 == 0 {
			time.Sleep(100 * time.Millisecond)
		}
	}

	reports, err := parser.ParseReportLines(events)
	if err != nil {
		return nil, fmt.Errorf("parsing report lines from %s: %w", logGroup, err)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.Before(reports[j].Timestamp)
	})

	return reports, nil
}
