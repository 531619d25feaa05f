package resolver

import "fmt"

// 面向用户的提示文案
const (
	MsgAssistantOffline     = "AI Agents are offline. Please try again later."
	MsgCartEmptyNoProduct   = "Your cart is empty and no product selected."
	MsgCartEmpty            = "Your cart is empty."
	MsgNotAtPaymentStage    = "We are not at the payment stage yet."
	MsgWhichCartItem        = "Which item should I add to your cart?"
	MsgWhichWishlistItem    = "Which item should I add to the wishlist?"
	MsgWhichOrderItem       = "Which item would you like to order?"
	MsgAskCancelOrderID     = "Please provide the order ID you'd like to cancel (e.g., 'Cancel order 12')."
	MsgDraftUpdated         = "Updated order details. Say 'Confirm' to place the order."
	MsgProceedingToCheckout = "Proceeding to checkout with your specified details. Say 'Confirm' to place the order."
	MsgSelectAddressToOrder = "Please select a delivery address to confirm the order."
	MsgAddressUnresolved    = "I identified a delivery request but couldn't finalize the address. Please select or enter one."
	MsgAddressLabelUnknown  = "I couldn't find that saved address. Please select or enter one."
	MsgNothingToCheckout    = "There is nothing to check out yet."
	MsgBulkOrderPlaced      = "Your cart order has been placed successfully!"
	MsgOrderFailed          = "Order failed. Please try again."
	MsgBulkOrderFailed      = "Failed to place bulk order. Please try again."
	MsgShowingOrders        = "Here are your orders."
	MsgAddressSaved         = "Address saved."
)

// MsgDirectOrdering 直购提示
func MsgDirectOrdering(qty int, name, address string) string {
	return fmt.Sprintf("Directly ordering %dx %q to %s...", qty, name, address)
}

// MsgAddingToCart 加购提示
func MsgAddingToCart(name string) string {
	return fmt.Sprintf("Adding %q to your cart...", name)
}

// MsgAddedToCart 加购完成提示
func MsgAddedToCart(qty int, name, size string) string {
	return fmt.Sprintf("Added %dx %s (%s) to your cart.", qty, name, size)
}

// MsgAlreadyInWishlist 已在心愿单
func MsgAlreadyInWishlist(name string) string {
	return fmt.Sprintf("%q is already in your wishlist.", name)
}

// MsgAddingToWishlist 加入心愿单提示
func MsgAddingToWishlist(name string) string {
	return fmt.Sprintf("Adding %q to your wishlist...", name)
}

// MsgCancellingOrder 取消中提示
func MsgCancellingOrder(id string) string {
	return fmt.Sprintf("Attempting to cancel order #%s...", id)
}

// MsgOrderCancelled 取消成功提示
func MsgOrderCancelled(id string) string {
	return fmt.Sprintf("Order #%s cancelled successfully.", id)
}

// MsgOrderPlaced 单品下单成功提示
func MsgOrderPlaced(id string) string {
	return fmt.Sprintf("Order #%s placed successfully!", id)
}
