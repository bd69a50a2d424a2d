package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stackMessage = `StackId='arn:aws:cloudformation:us-east-1:166088413922:stack/DigitalAppsLambda-Deploy/fe44f990-792a-11e7-9b6a-50fae984a035'
Timestamp='2017-08-08T17:36:34.381Z'
EventId='CloudFormationDeployFunction-UPDATE_COMPLETE-2017-08-08T17:36:34.381Z'
LogicalResourceId='CloudFormationDeployFunction'
Namespace='166088413922'
PhysicalResourceId='DigitalAppsLambda-CloudFormationDeployFunction'
ResourceProperties='
{
    "FunctionName": "DigitalAppsLambda-CloudFormationDeployFunction",
    "Runtime": "nodejs6.10",
    "Code": {
        "S3Bucket": "digitalappslambda-packagedlambdafunctionsbucket-108kab9jtcsbx",
        "S3Key": "554cbb5eef69abc1301389ea11feeced"
    },
    "Tags": [
        {
            "Value": "SAM",
            "Key": "lambda:createdBy"
        }
    ]
}

'
ResourceStatus='UPDATE_COMPLETE'
ResourceStatusReason=''
ResourceType='AWS::Lambda::Function'
StackName='DigitalAppsLambda-Deploy'
ClientRequestToken='null'
`

const alarmMessage = `{
  "AlarmName": "DigitalApps-311Indexer near memory limit",
  "AlarmDescription": "Average memory usage for this service is high",
  "AWSAccountId": "166088413922",
  "NewStateValue": "ALARM",
  "NewStateReason": "Threshold Crossed: 5 datapoints were greater than the threshold (10.0).",
  "StateChangeTime": "2017-08-08T20:11:21.564+0000",
  "Region": "US East (N. Virginia)",
  "OldStateValue": "OK"
}`

func TestParseFieldsSimple(t *testing.T) {
	fields, err := ParseFields("StackName='Foo'\nLogicalResourceId='Foo'\nResourceStatus='UPDATE_COMPLETE'")
	require.NoError(t, err)
	assert.Equal(t, Fields{
		"StackName":         "Foo",
		"LogicalResourceId": "Foo",
		"ResourceStatus":    "UPDATE_COMPLETE",
	}, fields)
}

func TestParseFieldsMultilineValue(t *testing.T) {
	fields, err := ParseFields(stackMessage)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE_COMPLETE", fields["ResourceStatus"])
	assert.Equal(t, "DigitalAppsLambda-Deploy", fields["StackName"])
	assert.Equal(t, "", fields["ResourceStatusReason"])
	assert.Equal(t, "null", fields["ClientRequestToken"])
	assert.Contains(t, fields["ResourceProperties"], `"S3Key": "554cbb5eef69abc1301389ea11feeced"`)
	assert.Contains(t, fields["ResourceProperties"], `"Key": "lambda:createdBy"`)
	assert.NotContains(t, fields, `    "Runtime": "nodejs6.10",`)
	assert.Len(t, fields, 12)
}

func TestParseFieldsQuotesInsideValue(t *testing.T) {
	fields, err := ParseFields("ResourceStatusReason='Template error: variable 'Foo' is unresolved'\nResourceStatus='UPDATE_FAILED'")
	require.NoError(t, err)
	assert.Equal(t, "Template error: variable 'Foo' is unresolved", fields["ResourceStatusReason"])
	assert.Equal(t, "UPDATE_FAILED", fields["ResourceStatus"])
}

func TestParseFieldsRepeatedKeyLastWins(t *testing.T) {
	fields, err := ParseFields("ResourceStatus='UPDATE_IN_PROGRESS'\nResourceStatus='UPDATE_COMPLETE'")
	require.NoError(t, err)
	assert.Equal(t, "UPDATE_COMPLETE", fields["ResourceStatus"])
}

func TestParseFieldsCRLF(t *testing.T) {
	fields, err := ParseFields("StackName='Foo'\r\nResourceStatus='DELETE_COMPLETE'\r\n")
	require.NoError(t, err)
	assert.Equal(t, "Foo", fields["StackName"])
	assert.Equal(t, "DELETE_COMPLETE", fields["ResourceStatus"])
}

func TestParseFieldsErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "no pairs", raw: "hello world"},
		{name: "unterminated", raw: "StackName='Foo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFields(tc.raw)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %v", err)
		})
	}
}

func TestParseDispatchesOnShape(t *testing.T) {
	t.Run("stack", func(t *testing.T) {
		p, err := Parse(stackMessage)
		require.NoError(t, err)
		require.Equal(t, KindStack, p.Kind())
		ev, ok := p.(StackEvent)
		require.True(t, ok)
		assert.Equal(t, "CloudFormationDeployFunction", ev.Fields["LogicalResourceId"])
	})

	t.Run("alarm", func(t *testing.T) {
		p, err := Parse(alarmMessage)
		require.NoError(t, err)
		require.Equal(t, KindAlarm, p.Kind())
		ev, ok := p.(AlarmEvent)
		require.True(t, ok)
		assert.Equal(t, "DigitalApps-311Indexer near memory limit", ev.AlarmName)
		assert.Equal(t, "ALARM", ev.NewStateValue)
		assert.Equal(t, "2017-08-08T20:11:21.564+0000", ev.StateChangeTime)
	})

	t.Run("alarm with unexpected trigger shape", func(t *testing.T) {
		p, err := Parse(`{"AlarmName":"a","NewStateValue":"OK","StateChangeTime":"2017-08-08T20:11:21.564+0000",` +
			`"Threshold":"high","Trigger":{"Period":"60","EvaluationPeriods":null,"Metrics":{}}}`)
		require.NoError(t, err)
		ev, ok := p.(AlarmEvent)
		require.True(t, ok)
		assert.Equal(t, "a", ev.AlarmName)
		assert.Equal(t, "OK", ev.NewStateValue)
		assert.Equal(t, "2017-08-08T20:11:21.564+0000", ev.StateChangeTime)
	})

	t.Run("non-string field is left empty", func(t *testing.T) {
		p, err := Parse(`{"AlarmName":42,"NewStateValue":"ALARM"}`)
		require.NoError(t, err)
		ev := p.(AlarmEvent)
		assert.Empty(t, ev.AlarmName)
		assert.Equal(t, "ALARM", ev.NewStateValue)
	})

	t.Run("malformed json is not read as text", func(t *testing.T) {
		_, err := Parse(`{"AlarmName": "x",`)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "malformed JSON", perr.Reason)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse("  \n")
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
	})
}
