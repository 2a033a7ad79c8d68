package mqtt

import "fmt"

// Publish sends a payload to the given topic at the configured QoS.
// It blocks until the broker acknowledges or the publish times out.
func (c *Client) Publish(topic string, payload []byte, retained bool) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, byte(c.cfg.QoS), retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout publishing to %s", ErrPublishFailed, topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishEvent publishes a device status event on the configured event topic.
// Events are not retained; consumers see only live traffic.
func (c *Client) PublishEvent(payload []byte) error {
	topic := c.cfg.Topic
	if topic == "" {
		topic = TopicDeviceStatus
	}
	return c.Publish(topic, payload, false)
}
