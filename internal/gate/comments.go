package gate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/assetscheck/internal/actions"
	"github.com/temirov/assetscheck/internal/assets"
)

const (
	listCommentsErrorTemplateConstant    = "unable to list comments on pull request #%d: %w"
	postCommentErrorTemplateConstant     = "unable to post report on pull request #%d: %w"
	deleteCommentFailedMessageConstant   = "Unable to delete previous assets report"
	deleteCommentWarningTemplateConstant = "Unable to delete previous assets report comment %d: %v"
	deletedCommentMessageConstant        = "Deleted previous assets report"
	postedCommentMessageConstant         = "Posted assets report"
	logFieldRepositoryConstant           = "repository"
	logFieldPullRequestConstant          = "pull_request"
	logFieldCommentIdentifierConstant    = "comment_id"
	logFieldPriorReportCountConstant     = "prior_report_count"
	priorReportsSelectedMessageConstant  = "Selected previous assets reports"
)

// IsPriorReport reports whether a comment is an earlier report written by the bot.
func IsPriorReport(authorLogin string, body string, botLogin string) bool {
	return authorLogin == botLogin && strings.Contains(body, assets.ReportHeaderToken)
}

type reportPublisher struct {
	logger           *zap.Logger
	client           CommentClient
	workflowCommands WorkflowCommands
	botLogin         string
}

// replace removes earlier bot reports and posts the new one. Listing and
// posting failures are fatal; a failed deletion is reported and skipped.
func (publisher reportPublisher) replace(executionContext context.Context, pullRequest actions.PullRequestContext, report string) (publication, error) {
	result := publication{}

	comments, listError := publisher.client.ListIssueComments(executionContext, pullRequest.Repository, pullRequest.Number)
	if listError != nil {
		return result, fmt.Errorf(listCommentsErrorTemplateConstant, pullRequest.Number, listError)
	}

	pullRequestFields := []zap.Field{
		zap.String(logFieldRepositoryConstant, pullRequest.Repository),
		zap.Int(logFieldPullRequestConstant, pullRequest.Number),
	}

	var priorReportIdentifiers []int64
	for _, comment := range comments {
		if IsPriorReport(comment.AuthorLogin, comment.Body, publisher.botLogin) {
			priorReportIdentifiers = append(priorReportIdentifiers, comment.ID)
		}
	}
	publisher.logger.Debug(priorReportsSelectedMessageConstant, append(pullRequestFields, zap.Int(logFieldPriorReportCountConstant, len(priorReportIdentifiers)))...)

	for _, commentIdentifier := range priorReportIdentifiers {
		deleteError := publisher.client.DeleteIssueComment(executionContext, pullRequest.Repository, commentIdentifier)
		if deleteError != nil {
			publisher.logger.Warn(deleteCommentFailedMessageConstant, append(pullRequestFields, zap.Int64(logFieldCommentIdentifierConstant, commentIdentifier), zap.Error(deleteError))...)
			if publisher.workflowCommands != nil {
				_ = publisher.workflowCommands.Warning(fmt.Sprintf(deleteCommentWarningTemplateConstant, commentIdentifier, deleteError))
			}
			result.FailedDeletions = append(result.FailedDeletions, commentIdentifier)
			continue
		}
		publisher.logger.Info(deletedCommentMessageConstant, append(pullRequestFields, zap.Int64(logFieldCommentIdentifierConstant, commentIdentifier))...)
		result.DeletedComments = append(result.DeletedComments, commentIdentifier)
	}

	postedComment, postError := publisher.client.CreateIssueComment(executionContext, pullRequest.Repository, pullRequest.Number, report)
	if postError != nil {
		return result, fmt.Errorf(postCommentErrorTemplateConstant, pullRequest.Number, postError)
	}
	publisher.logger.Info(postedCommentMessageConstant, append(pullRequestFields, zap.Int64(logFieldCommentIdentifierConstant, postedComment.ID))...)
	result.PostedComment = postedComment.ID

	return result, nil
}

// publication records the comment changes made on the pull request.
type publication struct {
	DeletedComments []int64
	FailedDeletions []int64
	PostedComment   int64
}
